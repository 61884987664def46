package constants

// Keyword vocabularies used by the field extractors. All matching is done
// against lowercased line text, so entries here stay lowercase.

// LegalSuffixes are company-type markers that identify a supplier line.
// Matching is token-exact: bare "sa"/"srl" must not fire inside "CASA" or
// "SRLINEA".
var LegalSuffixes = []string{
	"s.a.", "s.a", "sa",
	"s.r.l.", "s.r.l", "srl",
	"s.a.s.", "s.a.s", "sas",
	"s.c.a.", "s.h.",
	"saci", "sacif", "ltda", "ltda.",
}

// VendorExcluded rejects lines that look like metadata rather than a name.
var VendorExcluded = []string{
	"factura", "invoice", "cuit", "cuil", "venc", "vto", "due",
	"domicilio", "direccion", "dirección", "address",
	"tel", "phone", "@", "ingresos brutos",
}

// InvoiceNumberLabels mark lines that carry the invoice identifier.
var InvoiceNumberLabels = []string{"factura", "invoice", "comp. nro", "comprobante", "nro", "no."}

// InvoiceNumberExcluded marks lines skipped by the positional number fallback.
var InvoiceNumberExcluded = []string{"cae", "cuit", "cuil", "orden", "order", "remito", "delivery"}

// DateExcluded rejects lines whose "fecha" refers to something other than
// the issue date.
var DateExcluded = []string{"inicio de actividades", "cae", "venc", "vto", "due"}

// DueDateLabels mark lines that carry the payment due date.
var DueDateLabels = []string{"vencimiento", "fecha de vto", "vto", "venc", "condicion de pago", "condición de pago", "due"}

// AuthorizationKeyword flags the tax-authority electronic authorization code,
// whose digits mimic both invoice numbers and dates.
const AuthorizationKeyword = "cae"

// TotalExcluded rejects "total"-bearing lines that are not the grand total.
var TotalExcluded = []string{"subtotal", "sub-total", "sub total", "iva", "percep", "descuento", "neto"}

// ItemLineExcluded skips non-product lines during single-line row matching.
var ItemLineExcluded = []string{
	"flete", "forma de pago", "condicion de venta", "condición de venta",
	"observac", "subtotal", "iva", "percep", "transporte", "remito",
}

// TableHeaderKeywords identify the product-table header row; a header line
// must contain at least two of them.
var TableHeaderKeywords = []string{
	"codigo", "código", "descripcion", "descripción", "detalle",
	"cantidad", "cant", "precio", "unitario", "importe", "total",
	"articulo", "artículo", "item", "marca",
}

// TableEndKeywords bound the item table: the first line past the header that
// contains one of these ends the section.
var TableEndKeywords = []string{
	"subtotal", "sub-total", "iva", "son pesos", "importe total",
	"observac", "total:", "percep",
}

// ItemNameExcluded drops candidate items whose name is table metadata or
// known non-product noise rather than a product description.
var ItemNameExcluded = []string{
	"codigo", "código", "descripcion", "descripción", "cantidad",
	"precio", "unitario", "importe", "total", "subtotal", "iva", "cuit",
	"factura", "vencimiento", "domicilio", "telefono", "teléfono",
	"forma de pago", "observac", "remito", "flete", "son pesos",
	"página", "pagina", "hoja",
}

// Brands is the fixed brand vocabulary matched against item descriptions.
// Known limitation: unlisted brands are silently missed.
var Brands = []string{
	"BOSCH", "MANN", "MAHLE", "FRAM", "WEGA", "VALEO",
	"SKF", "GATES", "NGK", "FERODO", "LUK", "SACHS",
}
