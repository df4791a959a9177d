package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RowCountAndHeaderKeys(t *testing.T) {
	data := []byte("Name, SKU ,Category\nLaptop,LAP001,Electronics\nChair,CHR001,Furniture\n")

	rows, err := Parse(data, "products.csv")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Laptop", rows[0]["name"])
	assert.Equal(t, "LAP001", rows[0]["sku"])
	assert.Equal(t, "Furniture", rows[1]["category"])
}

func TestHeaders_KeepsCustomColumnsInFileOrder(t *testing.T) {
	data := []byte("Name,SKU,Warranty,Category\nLaptop,LAP001,2y,Electronics\n")

	headers, err := Headers(data, "products.csv")

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "sku", "warranty", "category"}, headers)

	rows, err := Parse(data, "products.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2y", rows[0]["warranty"])
}

func TestParse_QuotedFieldKeepsDelimiter(t *testing.T) {
	data := []byte("name,sku\n\"a,b\",X1\n")

	rows, err := Parse(data, "products.csv")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a,b", rows[0]["name"])
	assert.Equal(t, "X1", rows[0]["sku"])
}

func TestParse_TxtUsesTabDelimiter(t *testing.T) {
	data := []byte("name\tsku\tprice\nMonitor\tMON001\t199.99\n")

	rows, err := Parse(data, "products.txt")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Monitor", rows[0]["name"])
	assert.Equal(t, "199.99", rows[0]["price"])
}

func TestParse_TxtFallsBackToComma(t *testing.T) {
	data := []byte("name,sku\nMonitor,MON001\n")

	rows, err := Parse(data, "products.txt")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MON001", rows[0]["sku"])
}

func TestParse_DropsShortRows(t *testing.T) {
	data := []byte("name,sku,category\nLaptop,LAP001,Electronics\nChair,CHR001\n")

	rows, err := Parse(data, "products.csv")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "LAP001", rows[0]["sku"])
}

func TestParse_ExtraFieldsStillPass(t *testing.T) {
	data := []byte("name,sku\nLaptop,LAP001,unexpected\n")

	rows, err := Parse(data, "products.csv")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Laptop", rows[0]["name"])
}

func TestParse_SkipsBlankLines(t *testing.T) {
	data := []byte("name,sku\n\n   \nLaptop,LAP001\n\n")

	rows, err := Parse(data, "products.csv")

	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParse_CRLFLineEndings(t *testing.T) {
	data := []byte("name,sku\r\nLaptop,LAP001\r\n")

	rows, err := Parse(data, "products.csv")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "LAP001", rows[0]["sku"])
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse([]byte("  \n \n"), "products.csv")

	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse([]byte("name,sku\n"), "products.csv")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPreview_ReturnsFirstFive(t *testing.T) {
	rows := []Row{
		{"sku": "A"}, {"sku": "B"}, {"sku": "C"},
		{"sku": "D"}, {"sku": "E"}, {"sku": "F"},
	}

	preview := Preview(rows, 5)

	require.Len(t, preview, 5)
	assert.Equal(t, "A", preview[0]["sku"])
	assert.Equal(t, "E", preview[4]["sku"])
}

func TestPreview_ShortInput(t *testing.T) {
	rows := []Row{{"sku": "A"}}

	assert.Len(t, Preview(rows, 5), 1)
}
