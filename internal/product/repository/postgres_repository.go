package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
)

// PostgresProductRepository is a plain database/sql implementation of the
// product store, used when running against a local database without GORM.
type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, sku, category, price, cost, quantity, min_stock, max_stock, supplier, barcode, description, created_at, updated_at`

func (r *PostgresProductRepository) Create(product *domain.Product) error {
	query := `
		INSERT INTO products (name, sku, category, price, cost, quantity, min_stock, max_stock, supplier, barcode, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		product.Name,
		product.SKU,
		product.Category,
		product.Price,
		product.Cost,
		product.Quantity,
		product.MinStock,
		product.MaxStock,
		product.Supplier,
		product.Barcode,
		product.Description,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return domain.ErrSKUExists
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *PostgresProductRepository) FindByID(id uint) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`
	product, err := r.scanOne(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrProductNotFound
	}
	return product, err
}

func (r *PostgresProductRepository) FindBySKU(sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 AND deleted_at IS NULL`
	product, err := r.scanOne(r.db.QueryRow(query, sku))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return product, err
}

func (r *PostgresProductRepository) FindAll(filter domain.ListFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE deleted_at IS NULL`
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d OR description ILIKE $%d)", n, n, n)
	}
	if filter.LowStock {
		query += " AND quantity <= min_stock"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Cost,
			&p.Quantity, &p.MinStock, &p.MaxStock, &p.Supplier, &p.Barcode,
			&p.Description, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) Update(product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, sku = $2, category = $3, price = $4, cost = $5, quantity = $6,
		    min_stock = $7, max_stock = $8, supplier = $9, barcode = $10, description = $11,
		    updated_at = NOW()
		WHERE id = $12 AND deleted_at IS NULL
	`
	result, err := r.db.Exec(query,
		product.Name, product.SKU, product.Category, product.Price, product.Cost,
		product.Quantity, product.MinStock, product.MaxStock, product.Supplier,
		product.Barcode, product.Description, product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return checkAffected(result)
}

func (r *PostgresProductRepository) UpdateQuantity(id uint, quantity int) error {
	result, err := r.db.Exec(
		`UPDATE products SET quantity = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		quantity, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	return checkAffected(result)
}

func (r *PostgresProductRepository) Delete(id uint) error {
	result, err := r.db.Exec(
		`UPDATE products SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return checkAffected(result)
}

func (r *PostgresProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`).Scan(&count)
	return count, err
}

func (r *PostgresProductRepository) scanOne(row *sql.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Cost,
		&p.Quantity, &p.MinStock, &p.MaxStock, &p.Supplier, &p.Barcode,
		&p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
