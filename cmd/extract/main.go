package main

import (
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/smartinez/factura-extractor/internal/common"
	"github.com/smartinez/factura-extractor/internal/export"
	"github.com/smartinez/factura-extractor/internal/extract"
	"github.com/smartinez/factura-extractor/internal/schema"
)

func main() {
	// Setup structured logger that outputs messages with variables but no time/level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	inPath := flag.String("in", "", "invoice text file (default: stdin)")
	xlsxPath := flag.String("xlsx", "", "also write an XLSX prefill workbook to this path")
	withTrace := flag.Bool("trace", false, "include the extraction trace in the JSON output")
	flag.Parse()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	text, err := readInput(*inPath)
	if err != nil {
		logger.Error("read input", "path", *inPath, "error", err)
		os.Exit(1)
	}
	// The OCR collaborator's "no usable text" failures are caught here,
	// before the pipeline runs.
	if len(strings.TrimSpace(text)) < cfg.Input.MinLength {
		err := common.NewAppError("INPUT_TOO_SHORT", "text below minimum length", common.ErrInputTooShort)
		logger.Error("rejecting input", "length", len(text), "min", cfg.Input.MinLength, "error", err)
		os.Exit(1)
	}

	pipeline := extract.New(cfg.Extractor, logger)
	res, trace := pipeline.Extract(text)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	if err := schema.ValidateResult(out); err != nil {
		logger.Error("result failed contract validation", "error", err)
		os.Exit(1)
	}

	if *withTrace {
		payload := map[string]any{"result": json.RawMessage(out), "trace": trace}
		if out, err = json.MarshalIndent(payload, "", "  "); err != nil {
			logger.Error("encode trace", "error", err)
			os.Exit(1)
		}
	}
	os.Stdout.Write(append(out, '\n'))

	if *xlsxPath != "" {
		buf, err := export.NewService(logger).InvoiceXLSX(res)
		if err != nil {
			logger.Error("export xlsx", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxPath, buf, 0o644); err != nil {
			logger.Error("write xlsx", "path", *xlsxPath, "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx written", "path", *xlsxPath)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
