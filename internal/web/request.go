package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// maxJSONBody bounds JSON request bodies. Imports use UPLOAD_MAX_FILE_SIZE.
const maxJSONBody = 1 << 20

// decodeJSON reads one JSON value from the request body into dest.
// Malformed bodies become a ValidationError so they surface as 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var mb *http.MaxBytesError
		if errors.As(err, &mb) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &core.ValidationError{Field: "body", Message: "request body is required"}
		}
		return &core.ValidationError{Field: "body", Message: fmt.Sprintf("request body is not valid JSON: %v", err)}
	}
	return nil
}

// decodeRow decodes a JSON object body into a loosely typed row.
func decodeRow(w http.ResponseWriter, r *http.Request) (core.RawRow, error) {
	var row core.RawRow
	if err := decodeJSON(w, r, &row); err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &core.ValidationError{Field: "body", Message: "request body must be a JSON object"}
	}
	return row, nil
}

// bulkRows returns the rows of a {"products": [...]} body, or ok=false when
// body is a single record.
func bulkRows(body core.RawRow) (rows []core.RawRow, ok bool, err error) {
	raw, present := body["products"]
	if !present {
		return nil, false, nil
	}

	items, isList := raw.([]any)
	if !isList {
		return nil, true, &core.ValidationError{Field: "products", Message: "products must be a list"}
	}

	rows = make([]core.RawRow, len(items))
	for i, item := range items {
		obj, isObj := item.(map[string]any)
		if !isObj {
			return nil, true, &core.ValidationError{
				Field:   "products",
				Row:     i + 1,
				Message: "each product must be a JSON object",
			}
		}
		rows[i] = core.RawRow(obj)
	}
	return rows, true, nil
}
