package web

import (
	"net/http"

	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/view"
)

func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.service.ListVendors(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"vendors": view.FilterVendors(vendors, r.URL.Query().Get("search")),
	})
}

func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRow(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	vendor, err := s.service.CreateVendor(r.Context(), body)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{
		"success": true,
		"vendor":  vendor,
	})
}

func (s *Server) handleUpdateVendor(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRow(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	updated, err := s.service.UpdateVendor(r.Context(), body)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":       true,
		"updatedVendor": updated,
	})
}

// handleDeleteVendor mirrors handleDeleteProduct, including the 500 for an
// unknown id.
func (s *Server) handleDeleteVendor(w http.ResponseWriter, r *http.Request) {
	err := s.service.DeleteVendor(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		status := statusFor(err)
		if core.IsNotFound(err) {
			status = http.StatusInternalServerError
		}
		s.respondError(w, r, err, status)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}
