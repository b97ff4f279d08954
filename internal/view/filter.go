// Package view holds the presentation state of the catalog list: the last
// fetched records, the search query with its derived filtered list, and the
// per-client visible column set.
package view

import (
	"strings"

	"github.com/JonMunkholm/invbackoffice/internal/core"
)

// Filter returns the products whose name contains q, ignoring case.
// An empty query returns products unchanged.
func Filter(products []core.Product, q string) []core.Product {
	if q == "" {
		return products
	}

	needle := strings.ToLower(q)
	out := make([]core.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.ProductName), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterVendors returns the vendors whose company name contains q, ignoring case.
func FilterVendors(vendors []core.Vendor, q string) []core.Vendor {
	if q == "" {
		return vendors
	}

	needle := strings.ToLower(q)
	out := make([]core.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if strings.Contains(strings.ToLower(v.CompanyName), needle) {
			out = append(out, v)
		}
	}
	return out
}
