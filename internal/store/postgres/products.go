package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

const productColumns = `id::text, product_name, hsn_code, sku, tax, barcode, warehouse_location, image`

const insertProduct = `
INSERT INTO products (id, product_name, hsn_code, sku, tax, barcode, warehouse_location, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func productArgs(id string, p core.Product) []any {
	return []any{id, p.ProductName, p.HSNCode, p.SKU, p.Tax, p.Barcode, p.WarehouseLocation, p.Image}
}

func scanProduct(row pgx.Row) (core.Product, error) {
	var p core.Product
	err := row.Scan(&p.ID, &p.ProductName, &p.HSNCode, &p.SKU, &p.Tax, &p.Barcode, &p.WarehouseLocation, &p.Image)
	return p, err
}

// CreateProduct implements core.ProductStore.
func (s *Store) CreateProduct(ctx context.Context, p core.Product) (core.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id := uuid.NewString()
	row := s.db.QueryRow(ctx, insertProduct+" RETURNING "+productColumns, productArgs(id, p)...)
	created, err := scanProduct(row)
	if err != nil {
		return core.Product{}, classify("create product", err, "Product", "", p.Barcode)
	}
	return created, nil
}

// CreateProducts implements core.ProductStore.
func (s *Store) CreateProducts(ctx context.Context, products []core.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, classify("begin bulk insert", err, "Product", "", "")
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(insertProduct+" ON CONFLICT (barcode) DO NOTHING", productArgs(uuid.NewString(), p)...)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range products {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, classify("bulk insert products", err, "Product", "", "")
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, classify("bulk insert products", err, "Product", "", "")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, classify("commit bulk insert", err, "Product", "", "")
	}
	return inserted, nil
}

// ListProducts implements core.ProductStore.
func (s *Store) ListProducts(ctx context.Context) ([]core.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, "SELECT "+productColumns+" FROM products ORDER BY seq")
	if err != nil {
		return nil, classify("list products", err, "Product", "", "")
	}
	defer rows.Close()

	products := []core.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, classify("scan product", err, "Product", "", "")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list products", err, "Product", "", "")
	}
	return products, nil
}

// productAssignments returns the SET clauses and arguments for the supplied
// fields of u, numbering placeholders from 1.
func productAssignments(u core.ProductUpdate) ([]string, []any) {
	def, _ := core.Get(core.ModuleProducts)

	var (
		sets []string
		args []any
	)
	add := func(field string, set bool, value any) {
		if !set {
			return
		}
		spec, _ := def.FieldByName(field)
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", spec.DBColumn, len(args)))
	}

	add(core.FieldProductName, u.ProductName.Set, u.ProductName.Value)
	add(core.FieldHSNCode, u.HSNCode.Set, u.HSNCode.Value)
	add(core.FieldSKU, u.SKU.Set, u.SKU.Value)
	add(core.FieldTax, u.Tax.Set, u.Tax.Value)
	add(core.FieldBarcode, u.Barcode.Set, u.Barcode.Value)
	add(core.FieldWarehouseLocation, u.WarehouseLocation.Set, u.WarehouseLocation.Value)
	add(core.FieldImage, u.Image.Set, u.Image.Value)
	return sets, args
}

// UpdateProduct implements core.ProductStore.
func (s *Store) UpdateProduct(ctx context.Context, id string, u core.ProductUpdate) (core.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sets, args := productAssignments(u)
	if len(sets) == 0 {
		row := s.db.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
		p, err := scanProduct(row)
		if err != nil {
			return core.Product{}, classify("get product", err, "Product", id, "")
		}
		return p, nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s, updated_at = now() WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns)

	updated, err := scanProduct(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return core.Product{}, classify("update product", err, "Product", id, u.Barcode.Value)
	}
	return updated, nil
}

// DeleteProduct implements core.ProductStore.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return classify("delete product", err, "Product", id, "")
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Entity: "Product", ID: id}
	}
	return nil
}
