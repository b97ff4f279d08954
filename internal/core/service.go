package core

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/JonMunkholm/invbackoffice/internal/core"

// Service provides the catalog business logic: single and bulk writes,
// spreadsheet import and export, and the vendor collaborator module.
// It holds no mutable state of its own; the stores enforce every
// mutation contract.
type Service struct {
	products   ProductStore
	vendors    VendorStore
	workbook   Workbook
	newBarcode BarcodeGenerator
	tracer     trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithBarcodeGenerator replaces the default UUID barcode generator.
func WithBarcodeGenerator(gen BarcodeGenerator) Option {
	return func(s *Service) {
		s.newBarcode = gen
	}
}

// WithTracer replaces the global otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// NewService creates a new Service instance.
func NewService(products ProductStore, vendors VendorStore, workbook Workbook, opts ...Option) *Service {
	s := &Service{
		products:   products,
		vendors:    vendors,
		workbook:   workbook,
		newBarcode: NewBarcode,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Modules returns information about all registered modules.
func (s *Service) Modules() []ModuleInfo {
	defs := All()
	infos := make([]ModuleInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// CreateProduct validates, normalizes and stores one record.
// When the barcode was generated and the store rejects it as a duplicate,
// a fresh one is tried up to MaxBarcodeAttempts times. A caller-supplied
// barcode that collides fails immediately.
func (s *Service) CreateProduct(ctx context.Context, row RawRow) (Product, error) {
	if err := ValidateProductRow(row); err != nil {
		return Product{}, err
	}

	generated := false
	gen := func() string {
		generated = true
		return s.newBarcode()
	}

	p, err := NormalizeProduct(row, gen)
	if err != nil {
		return Product{}, err
	}

	for attempt := 1; ; attempt++ {
		created, err := s.products.CreateProduct(ctx, p)
		if err == nil {
			return created, nil
		}
		if !generated || !IsConstraint(err) || attempt >= MaxBarcodeAttempts {
			return Product{}, err
		}
		p.Barcode = s.newBarcode()
	}
}

// CreateProducts validates and normalizes every row, then hands the whole
// batch to the store in one call. A row that fails validation fails the
// batch before anything is written. Returns the inserted count; rows whose
// barcode already exists are skipped silently.
func (s *Service) CreateProducts(ctx context.Context, rows []RawRow) (int, error) {
	products, err := s.normalizeBatch(rows, 0)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}
	return s.products.CreateProducts(ctx, products)
}

// normalizeBatch runs the schema step and normalizer over rows. Errors name
// the 1-based row, shifted by headerRows so imports report sheet rows.
// Generated barcodes that collide with an earlier row are regenerated.
func (s *Service) normalizeBatch(rows []RawRow, headerRows int) ([]Product, error) {
	products := make([]Product, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		generated := false
		gen := func() string {
			generated = true
			return s.newBarcode()
		}

		err := ValidateProductRow(row)
		var p Product
		if err == nil {
			p, err = NormalizeProduct(row, gen)
		}
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Row = i + 1 + headerRows
			}
			return nil, err
		}

		for attempt := 1; generated && seen[p.Barcode] && attempt < MaxBarcodeAttempts; attempt++ {
			p.Barcode = s.newBarcode()
		}
		seen[p.Barcode] = true
		products = append(products, p)
	}
	return products, nil
}

// ListProducts returns every catalog record in insertion order.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.products.ListProducts(ctx)
}

// UpdateProduct applies the fields present in row to the record named by
// row["id"]. The id itself is never changed.
func (s *Service) UpdateProduct(ctx context.Context, row RawRow) (Product, error) {
	id := requiredText(row[FieldID])
	if id == "" {
		return Product{}, &ValidationError{Field: FieldID, Message: "Product ID is required"}
	}

	u, err := NormalizeProductUpdate(row)
	if err != nil {
		return Product{}, err
	}
	return s.products.UpdateProduct(ctx, id, u)
}

// DeleteProduct permanently removes one record.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: FieldID, Message: "Product ID is required"}
	}
	return s.products.DeleteProduct(ctx, id)
}

// ImportProducts parses a workbook and bulk-creates its rows in a single
// synchronous pass. A parse failure or an invalid row aborts before the
// store is touched. An empty sheet returns NoData without a store call.
func (s *Service) ImportProducts(ctx context.Context, data []byte) (ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "core.ImportProducts")
	defer span.End()

	result, err := s.importProducts(ctx, data)
	span.SetAttributes(
		attribute.Int("import.total_rows", result.TotalRows),
		attribute.Int("import.inserted", result.InsertedCount),
		attribute.Int("import.skipped", result.SkippedCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func (s *Service) importProducts(ctx context.Context, data []byte) (ImportResult, error) {
	if s.workbook == nil {
		return ImportResult{}, errors.New("import: no workbook codec configured")
	}

	rows, err := s.workbook.Parse(data)
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) == 0 {
		return ImportResult{NoData: true}, nil
	}

	// Row 1 is the header, so data starts on sheet row 2.
	products, err := s.normalizeBatch(rows, 1)
	if err != nil {
		return ImportResult{TotalRows: len(rows)}, err
	}

	inserted, err := s.products.CreateProducts(ctx, products)
	if err != nil {
		return ImportResult{TotalRows: len(rows)}, fmt.Errorf("import products: %w", err)
	}

	return ImportResult{
		InsertedCount: inserted,
		TotalRows:     len(rows),
		SkippedCount:  len(rows) - inserted,
	}, nil
}

// ExportProducts serializes the current catalog into a workbook.
func (s *Service) ExportProducts(ctx context.Context) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "core.ExportProducts")
	defer span.End()

	if s.workbook == nil {
		return nil, errors.New("export: no workbook codec configured")
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("export.rows", len(products)))

	data, err := s.workbook.WriteProducts(products)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("export products: %w", err)
	}
	return data, nil
}
