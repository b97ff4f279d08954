package core

import "github.com/google/uuid"

// MaxBarcodeAttempts bounds how many generated barcodes a single create tries
// before giving up on a store constraint error.
const MaxBarcodeAttempts = 3

// BarcodeGenerator returns a fresh barcode token. Tokens must not depend on
// row content.
type BarcodeGenerator func() string

// NewBarcode is the default generator: a random UUID.
func NewBarcode() string {
	return uuid.NewString()
}
