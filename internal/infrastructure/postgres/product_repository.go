package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, category_id, brand_id, name, name_kh, model, sku, barcode, cost_price, selling_price,
	is_serialized, quantity, low_stock_threshold, storage_capacity, color, condition, description, image_url,
	is_active, created_at, updated_at`

// Columnas permitidas en ORDER BY; cualquier otro valor cae en name.
var productOrderColumns = map[string]bool{
	"name": true, "sku": true, "selling_price": true, "quantity": true, "created_at": true,
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// q puede ser el pool o una pgx.Tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.BrandID, p.Name, p.NameKH, p.Model, p.SKU, p.Barcode, p.CostPrice, p.SellingPrice,
		p.IsSerialized, p.Quantity, p.LowStockThreshold, p.StorageCapacity, p.Color, p.Condition, p.Description,
		p.ImageURL, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza los datos del producto (incluido el stock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET
			category_id = $2, brand_id = $3, name = $4, name_kh = $5, model = $6, sku = $7, barcode = $8,
			cost_price = $9, selling_price = $10, is_serialized = $11, quantity = $12, low_stock_threshold = $13,
			storage_capacity = $14, color = $15, condition = $16, description = $17, image_url = $18,
			is_active = $19, updated_at = $20
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.BrandID, p.Name, p.NameKH, p.Model, p.SKU, p.Barcode,
		p.CostPrice, p.SellingPrice, p.IsSerialized, p.Quantity, p.LowStockThreshold,
		p.StorageCapacity, p.Color, p.Condition, p.Description, p.ImageURL,
		p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate borrado lógico.
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List aplica el filtro y devuelve la página junto con el total de coincidencias.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %[1]s OR sku ILIKE %[1]s OR barcode ILIKE %[1]s OR model ILIKE %[1]s)", p))
	}
	if f.CategoryID != "" {
		conds = append(conds, "category_id = "+arg(f.CategoryID))
	}
	if f.BrandID != "" {
		conds = append(conds, "brand_id = "+arg(f.BrandID))
	}
	if f.Condition != "" {
		conds = append(conds, "condition = "+arg(f.Condition))
	}
	if f.IsSerialized != nil {
		conds = append(conds, "is_serialized = "+arg(*f.IsSerialized))
	}
	if f.LowStock {
		conds = append(conds, "is_serialized = FALSE AND quantity <= low_stock_threshold")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	order := "name"
	if productOrderColumns[f.SortBy] {
		order = f.SortBy
	}
	if f.SortDesc {
		order += " DESC"
	}
	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY ` + order + `, id`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	out, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListLowStock productos activos no serializados en o por debajo del umbral.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE AND is_serialized = FALSE AND quantity <= low_stock_threshold
		ORDER BY quantity, name`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// DecrementStock descuenta de forma condicional: nunca deja quantity negativo.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID string, qty int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2`, productID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// IncrementStock repone existencias; si el producto no existe devuelve domain.ErrNotFound.
func (r *ProductRepo) IncrementStock(ctx context.Context, productID string, qty int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1`, productID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func productWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		if violatedConstraint(err) == "products_barcode_key" {
			return domain.Duplicate("Barcode already exists")
		}
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.BrandID, &p.Name, &p.NameKH, &p.Model, &p.SKU, &p.Barcode,
		&p.CostPrice, &p.SellingPrice, &p.IsSerialized, &p.Quantity, &p.LowStockThreshold,
		&p.StorageCapacity, &p.Color, &p.Condition, &p.Description, &p.ImageURL,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
