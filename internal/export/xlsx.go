package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/smartinez/factura-extractor/internal/entity"
)

// Service produces XLSX bytes for a data-entry prefill of one extraction.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// InvoiceXLSX renders the extracted header fields and item rows as a
// workbook. Missing fields are written as empty cells for the reviewer to
// fill in.
func (s *Service) InvoiceXLSX(res entity.ExtractionResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Invoice"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 && sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	header := [][2]any{
		{"Vendor", res.VendorName},
		{"Invoice Number", res.InvoiceNumber},
		{"Invoice Date", res.InvoiceDate},
		{"Due Date", res.DueDate},
		{"Total Amount", fmt.Sprintf("%.2f", res.TotalAmount)},
	}
	for i, kv := range header {
		write(1, i+1, kv[0])
		write(2, i+1, kv[1])
	}

	itemHeaders := []string{"Item", "Code", "Brand", "Quantity", "Unit Price", "Total Price"}
	headerRow := len(header) + 2
	for i, h := range itemHeaders {
		write(i+1, headerRow, h)
	}
	row := headerRow + 1
	for _, it := range res.Items {
		write(1, row, it.Name)
		write(2, row, it.Code)
		write(3, row, it.Brand)
		write(4, row, it.Quantity)
		write(5, row, fmt.Sprintf("%.2f", it.UnitPrice))
		write(6, row, fmt.Sprintf("%.2f", it.TotalPrice))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 40) // item / field names
	_ = f.SetColWidth(sheet, "B", "C", 18)
	_ = f.SetColWidth(sheet, "D", "F", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"items", len(res.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
