package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	"github.com/stockroomlabs/stockroom/pkg/logger"
)

// Resolution is the caller's choice for rows whose SKU already exists.
type Resolution string

const (
	// ResolutionNone means no choice was made; a run with duplicates fails.
	ResolutionNone Resolution = ""
	// ResolutionSkip leaves existing products untouched.
	ResolutionSkip Resolution = "skip"
	// ResolutionUpdate overwrites existing products with the file's values.
	ResolutionUpdate Resolution = "update"
	// ResolutionCancel aborts the whole run before any mutation.
	ResolutionCancel Resolution = "cancel"
)

var (
	ErrDuplicatesUnresolved = errors.New("file contains duplicate SKUs, choose a resolution")
	ErrInvalidResolution    = errors.New("invalid duplicate resolution")
)

// ValidResolution reports whether r is one of the accepted resolutions.
func ValidResolution(r Resolution) bool {
	switch r {
	case ResolutionNone, ResolutionSkip, ResolutionUpdate, ResolutionCancel:
		return true
	}
	return false
}

// Duplicate describes one file row whose SKU matches an existing product.
type Duplicate struct {
	Row          int    `json:"row"`
	SKU          string `json:"sku"`
	IncomingName string `json:"incoming_name"`
	ExistingID   uint   `json:"existing_id"`
	ExistingName string `json:"existing_name"`
}

// RowError records a failed data row. Row numbers are 1-based and count data
// rows, not file lines.
type RowError struct {
	Row     int    `json:"row"`
	SKU     string `json:"sku"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	if e.SKU == "" {
		return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("Row %d (%s): %s", e.Row, e.SKU, e.Message)
}

// Result summarizes a completed import run.
type Result struct {
	RunID      string     `json:"run_id"`
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
	Errors     []RowError `json:"errors,omitempty"`
}

// SampleErrors renders at most max error lines, appending a count of the
// rest when the list is longer.
func (r *Result) SampleErrors(max int) []string {
	if max <= 0 {
		max = 10
	}
	lines := make([]string, 0, max+1)
	for i, e := range r.Errors {
		if i == max {
			lines = append(lines, fmt.Sprintf("... and %d more", len(r.Errors)-max))
			break
		}
		lines = append(lines, e.String())
	}
	return lines
}

// Pipeline applies parsed rows to the product store sequentially, in file
// order. One pipeline instance is safe for concurrent runs.
type Pipeline struct {
	store    productdomain.ProductRepository
	rowDelay time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRowDelay inserts a pause between consecutive rows so a large import
// does not monopolize the store.
func WithRowDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.rowDelay = d }
}

func NewPipeline(store productdomain.ProductRepository, opts ...Option) *Pipeline {
	p := &Pipeline{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckDuplicates returns one entry per row whose SKU resolves to an
// existing product. Rows without a SKU are not duplicates; they fail later
// during apply.
func (p *Pipeline) CheckDuplicates(ctx context.Context, rows []Row) ([]Duplicate, error) {
	duplicates := []Duplicate{}
	seen := map[string]*productdomain.Product{}

	for i, row := range rows {
		sku := strings.TrimSpace(row["sku"])
		if sku == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		existing, ok := seen[sku]
		if !ok {
			var err error
			existing, err = p.store.FindBySKU(sku)
			if err != nil {
				return nil, fmt.Errorf("failed to check sku %s: %w", sku, err)
			}
			seen[sku] = existing
		}
		if existing == nil {
			continue
		}
		duplicates = append(duplicates, Duplicate{
			Row:          i + 1,
			SKU:          sku,
			IncomingName: strings.TrimSpace(row["name"]),
			ExistingID:   existing.ID,
			ExistingName: existing.Name,
		})
	}
	return duplicates, nil
}

// Run applies rows to the store and reports per-row outcomes. Duplicates are
// re-detected at run time; a stale preview cannot bypass resolution. Cancel
// returns an empty result without touching the store. A failing row never
// stops the rows after it.
func (p *Pipeline) Run(ctx context.Context, rows []Row, resolution Resolution) (*Result, error) {
	if !ValidResolution(resolution) {
		return nil, ErrInvalidResolution
	}

	result := &Result{RunID: uuid.NewString(), Errors: []RowError{}}
	if resolution == ResolutionCancel {
		return result, nil
	}

	duplicates, err := p.CheckDuplicates(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(duplicates) > 0 && resolution == ResolutionNone {
		return nil, ErrDuplicatesUnresolved
	}
	existingBySKU := make(map[string]uint, len(duplicates))
	for _, d := range duplicates {
		existingBySKU[d.SKU] = d.ExistingID
	}

	logger.Info(ctx).
		Str("run_id", result.RunID).
		Int("rows", len(rows)).
		Int("duplicates", len(duplicates)).
		Str("resolution", string(resolution)).
		Msg("Starting import run")

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if i > 0 && p.rowDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(p.rowDelay):
			}
		}

		rowNum := i + 1
		sku := strings.TrimSpace(row["sku"])

		if existingID, isDup := existingBySKU[sku]; isDup {
			if resolution == ResolutionSkip {
				result.Skipped++
				continue
			}
			if err := p.applyUpdate(existingID, row); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, RowError{Row: rowNum, SKU: sku, Message: err.Error()})
				continue
			}
			result.Successful++
			continue
		}

		product, err := buildProduct(row)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, SKU: sku, Message: err.Error()})
			continue
		}
		if err := p.store.Create(product); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: rowNum, SKU: sku, Message: err.Error()})
			continue
		}
		result.Successful++
	}

	logger.Info(ctx).
		Str("run_id", result.RunID).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("Import run finished")

	return result, nil
}

func (p *Pipeline) applyUpdate(id uint, row Row) error {
	incoming, err := buildProduct(row)
	if err != nil {
		return err
	}
	existing, err := p.store.FindByID(id)
	if err != nil {
		return err
	}
	existing.Name = incoming.Name
	existing.Category = incoming.Category
	existing.Price = incoming.Price
	existing.Cost = incoming.Cost
	existing.Quantity = incoming.Quantity
	existing.MinStock = incoming.MinStock
	existing.MaxStock = incoming.MaxStock
	existing.Supplier = incoming.Supplier
	existing.Barcode = incoming.Barcode
	existing.Description = incoming.Description
	return p.store.Update(existing)
}

// buildProduct validates one row and coerces its fields. Name, SKU,
// category, price and quantity are required; price and quantity must parse
// as non-negative numbers. Optional numerics default to zero when blank or
// unparseable but may not be negative.
func buildProduct(row Row) (*productdomain.Product, error) {
	product := &productdomain.Product{
		Name:        strings.TrimSpace(row["name"]),
		SKU:         strings.TrimSpace(row["sku"]),
		Category:    strings.TrimSpace(row["category"]),
		Supplier:    strings.TrimSpace(row["supplier"]),
		Barcode:     strings.TrimSpace(row["barcode"]),
		Description: strings.TrimSpace(row["description"]),
	}

	for field, value := range map[string]string{
		"name":     product.Name,
		"sku":      product.SKU,
		"category": product.Category,
		"price":    strings.TrimSpace(row["price"]),
		"quantity": strings.TrimSpace(row["quantity"]),
	} {
		if value == "" {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(row["price"]))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("invalid numeric value: price")
	}
	product.Price = price

	quantity, err := strconv.Atoi(strings.TrimSpace(row["quantity"]))
	if err != nil || quantity < 0 {
		return nil, fmt.Errorf("invalid numeric value: quantity")
	}
	product.Quantity = quantity

	product.Cost = decimal.Zero
	if raw := strings.TrimSpace(row["cost"]); raw != "" {
		if cost, err := decimal.NewFromString(raw); err == nil {
			if cost.IsNegative() {
				return nil, fmt.Errorf("invalid numeric value: cost")
			}
			product.Cost = cost
		}
	}

	if raw := strings.TrimSpace(row["min_stock"]); raw != "" {
		if minStock, err := strconv.Atoi(raw); err == nil {
			if minStock < 0 {
				return nil, fmt.Errorf("invalid numeric value: min_stock")
			}
			product.MinStock = minStock
		}
	}

	if raw := strings.TrimSpace(row["max_stock"]); raw != "" {
		if maxStock, err := strconv.Atoi(raw); err == nil {
			if maxStock < 0 {
				return nil, fmt.Errorf("invalid numeric value: max_stock")
			}
			product.MaxStock = &maxStock
		}
	}

	return product, nil
}
