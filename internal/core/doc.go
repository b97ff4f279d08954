// Package core provides the business logic for the inventory back office.
//
// This package is independent of any transport or storage. It can be used by
// web handlers, the catalogctl CLI, or tests without modification.
//
// # Architecture
//
//   - Module Definitions: products and vendors are registered at init time with
//     their field specs; the registry drives validation, storage column names
//     and column pickers.
//   - Normalizer: [ValidateProductRow] checks the shape of a loosely typed row,
//     then [NormalizeProduct] coerces it into a [Product].
//   - Stores: [ProductStore] and [VendorStore] are ports; adapters live under
//     internal/store and enforce barcode uniqueness atomically with the write.
//   - Service: the entry point for create, bulk create, list, update, delete,
//     import and export.
//
// # Import
//
// [Service.ImportProducts] is one synchronous pass:
//
//  1. The [Workbook] decodes the first sheet into raw rows
//  2. Every row is validated and normalized; one bad row fails the batch
//  3. The batch goes to [ProductStore.CreateProducts], which skips duplicates
//  4. The result reports inserted, total and derived skipped counts
//
// # Barcodes
//
// A supplied barcode is stored as is. An absent or blank one is generated by
// the [BarcodeGenerator]. Single creates retry generated barcodes on a store
// [ConstraintError] up to [MaxBarcodeAttempts] times.
//
// # Error Handling
//
// Typed errors ([ValidationError], [NotFoundError], [ConstraintError],
// [ParseError], [StoreError]) are mapped to user-facing messages with codes
// by [MapError].
package core
