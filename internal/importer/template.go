package importer

import "strings"

// TemplateHeaders is the column set the import pipeline understands, in
// download order.
var TemplateHeaders = []string{
	"name", "sku", "category", "price", "cost",
	"quantity", "min_stock", "max_stock", "supplier", "barcode", "description",
}

var templateRows = [][]string{
	{"Laptop Dell XPS 13", "LAP001", "Electronics", "1299.99", "950.00", "15", "5", "50", "Dell Inc", "123456789012", "13-inch ultrabook"},
	{"Office Chair", "CHR001", "Furniture", "249.99", "150.00", "30", "10", "100", "Office Depot", "234567890123", "Ergonomic mesh chair"},
	{"Wireless Mouse", "MOU001", "Electronics", "29.99", "12.50", "120", "25", "300", "Logitech", "345678901234", "2.4GHz wireless mouse"},
}

// CSVTemplate returns a comma-delimited sample file for download.
func CSVTemplate() []byte {
	return renderTemplate(",")
}

// TXTTemplate returns a tab-delimited sample file for download.
func TXTTemplate() []byte {
	return renderTemplate("\t")
}

func renderTemplate(delimiter string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(TemplateHeaders, delimiter))
	b.WriteString("\n")
	for _, row := range templateRows {
		b.WriteString(strings.Join(row, delimiter))
		b.WriteString("\n")
	}
	return []byte(b.String())
}
