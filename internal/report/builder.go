package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
)

// Summary holds the headline inventory numbers.
type Summary struct {
	TotalProducts int             `json:"total_products"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// CategoryStat aggregates one category's products.
type CategoryStat struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// StockStatus buckets products by stock health.
type StockStatus struct {
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// Percent returns count as a share of total, in percent.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// RankedProduct is one entry of the top-products-by-value list.
type RankedProduct struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// Data is a full inventory report built from the current catalog.
type Data struct {
	GeneratedAt   time.Time               `json:"generated_at"`
	Summary       Summary                 `json:"summary"`
	Categories    []CategoryStat          `json:"categories"`
	StockStatus   StockStatus             `json:"stock_status"`
	TopProducts   []RankedProduct         `json:"top_products"`
	LowStockItems []productdomain.Product `json:"low_stock_items"`
}

// topProductLimit caps the TOP PRODUCTS BY VALUE section.
const topProductLimit = 5

// Builder assembles report data from the product catalog.
type Builder struct {
	store productdomain.ProductRepository
}

func NewBuilder(store productdomain.ProductRepository) *Builder {
	return &Builder{store: store}
}

// Build reads the whole catalog once and derives every report section from
// that single snapshot.
func (b *Builder) Build() (*Data, error) {
	products, err := b.store.FindAll(productdomain.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	data := &Data{
		GeneratedAt:   time.Now(),
		Categories:    []CategoryStat{},
		TopProducts:   []RankedProduct{},
		LowStockItems: []productdomain.Product{},
	}
	data.Summary.TotalProducts = len(products)
	data.Summary.TotalValue = decimal.Zero

	byCategory := map[string]*CategoryStat{}
	var categoryOrder []string

	for _, p := range products {
		value := p.StockValue()

		data.Summary.TotalQuantity += p.Quantity
		data.Summary.TotalValue = data.Summary.TotalValue.Add(value)
		if p.IsLowStock() {
			data.Summary.LowStockCount++
			data.LowStockItems = append(data.LowStockItems, p)
		}

		switch {
		case p.IsOutOfStock():
			data.StockStatus.OutOfStock++
		case p.IsLowStock():
			data.StockStatus.LowStock++
		default:
			data.StockStatus.InStock++
		}

		stat, ok := byCategory[p.Category]
		if !ok {
			stat = &CategoryStat{Name: p.Category, Value: decimal.Zero}
			byCategory[p.Category] = stat
			categoryOrder = append(categoryOrder, p.Category)
		}
		stat.Count++
		stat.Value = stat.Value.Add(value)

		data.TopProducts = append(data.TopProducts, RankedProduct{
			Name:       p.Name,
			SKU:        p.SKU,
			Category:   p.Category,
			Quantity:   p.Quantity,
			TotalValue: value,
		})
	}

	for _, name := range categoryOrder {
		data.Categories = append(data.Categories, *byCategory[name])
	}

	sort.SliceStable(data.TopProducts, func(i, j int) bool {
		return data.TopProducts[i].TotalValue.GreaterThan(data.TopProducts[j].TotalValue)
	})
	if len(data.TopProducts) > topProductLimit {
		data.TopProducts = data.TopProducts[:topProductLimit]
	}

	return data, nil
}

// RenderCSV serializes the report into the fixed multi-section CSV layout.
func RenderCSV(data *Data) []byte {
	var b strings.Builder

	b.WriteString("INVENTORY REPORTS SUMMARY\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("INVENTORY SUMMARY\n")
	b.WriteString("Metric,Value\n")
	fmt.Fprintf(&b, "Total Products,%d\n", data.Summary.TotalProducts)
	fmt.Fprintf(&b, "Total Quantity,%d\n", data.Summary.TotalQuantity)
	fmt.Fprintf(&b, "Total Value,R%s\n", data.Summary.TotalValue.StringFixed(2))
	fmt.Fprintf(&b, "Low Stock Items,%d\n\n", data.Summary.LowStockCount)

	b.WriteString("CATEGORY BREAKDOWN\n")
	b.WriteString("Category,Product Count,Total Value\n")
	for _, cat := range data.Categories {
		fmt.Fprintf(&b, "%q,%d,R%s\n", cat.Name, cat.Count, cat.Value.StringFixed(2))
	}
	b.WriteString("\n")

	total := data.Summary.TotalProducts
	b.WriteString("STOCK STATUS\n")
	b.WriteString("Status,Count,Percentage\n")
	fmt.Fprintf(&b, "In Stock,%d,%.1f%%\n", data.StockStatus.InStock, Percent(data.StockStatus.InStock, total))
	fmt.Fprintf(&b, "Low Stock,%d,%.1f%%\n", data.StockStatus.LowStock, Percent(data.StockStatus.LowStock, total))
	fmt.Fprintf(&b, "Out of Stock,%d,%.1f%%\n\n", data.StockStatus.OutOfStock, Percent(data.StockStatus.OutOfStock, total))

	b.WriteString("TOP PRODUCTS BY VALUE\n")
	b.WriteString("Rank,Product Name,SKU,Category,Quantity,Total Value\n")
	for i, p := range data.TopProducts {
		fmt.Fprintf(&b, "%d,%q,%q,%q,%d,R%s\n", i+1, p.Name, p.SKU, p.Category, p.Quantity, p.TotalValue.StringFixed(2))
	}
	b.WriteString("\n")

	if len(data.LowStockItems) > 0 {
		b.WriteString("LOW STOCK ITEMS\n")
		b.WriteString("Product Name,SKU,Current Stock,Min Stock,Category\n")
		for _, p := range data.LowStockItems {
			fmt.Fprintf(&b, "%q,%q,%d,%d,%q\n", p.Name, p.SKU, p.Quantity, p.MinStock, p.Category)
		}
	}

	return []byte(b.String())
}
