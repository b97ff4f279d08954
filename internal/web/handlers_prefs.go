package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/invbackoffice/internal/view"
)

// ClientIDHeader names the caller whose column preferences are read or written.
const ClientIDHeader = "X-Client-ID"

type columnsRequest struct {
	Columns []string `json:"columns"`
}

func clientID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(ClientIDHeader)); id != "" {
		return id
	}
	return view.DefaultClient
}

// handleGetColumns returns the visible columns of a module for the client.
func (s *Server) handleGetColumns(w http.ResponseWriter, r *http.Request) {
	pref, err := view.LoadColumnPreference(r.Context(), s.prefs, chi.URLParam(r, "module"), clientID(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":   true,
		"columns":   pref.Columns(),
		"available": pref.Available(),
	})
}

// handleSetColumns replaces the visible columns of a module for the client.
func (s *Server) handleSetColumns(w http.ResponseWriter, r *http.Request) {
	pref, err := view.LoadColumnPreference(r.Context(), s.prefs, chi.URLParam(r, "module"), clientID(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var req columnsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if err := pref.Set(r.Context(), req.Columns); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"columns": pref.Columns(),
	})
}
