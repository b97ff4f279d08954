package web

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/logging"
	"github.com/JonMunkholm/invbackoffice/internal/view"
)

// handleListModules returns the registered modules and their columns.
func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"modules": s.service.Modules(),
	})
}

// handleListProducts returns every product, narrowed by ?search= on the name.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.ListProducts(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":  true,
		"products": view.Filter(products, r.URL.Query().Get("search")),
	})
}

// handleCreateProducts creates one product, or a batch when the body is
// {"products": [...]}.
func (s *Server) handleCreateProducts(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRow(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rows, bulk, err := bulkRows(body)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if !bulk {
		product, err := s.service.CreateProduct(r.Context(), body)
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		writeJSON(w, r, http.StatusCreated, map[string]any{
			"success": true,
			"product": product,
		})
		return
	}

	inserted, err := s.service.CreateProducts(r.Context(), rows)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("bulk create",
		"rows", len(rows),
		"inserted", inserted,
	)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":       true,
		"insertedCount": inserted,
	})
}

// handleUpdateProduct applies the supplied fields to the product named by "id".
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRow(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	updated, err := s.service.UpdateProduct(r.Context(), body)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success":        true,
		"updatedProduct": updated,
	})
}

// handleDeleteProduct removes the product named by ?id=.
// An unknown id is reported as a server failure carrying the not-found message.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := s.service.DeleteProduct(r.Context(), r.URL.Query().Get("id"))
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

// handleImportProducts bulk-creates the rows of an uploaded workbook.
func (s *Server) handleImportProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data, filename, err := readUpload(w, r, s.cfg.Upload.MaxFileSize)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logger := logging.WithFields(r.Context(), "file", filename, "size", len(data))

	result, err := s.service.ImportProducts(r.Context(), data)
	if s.metrics != nil {
		s.metrics.RecordImport(result, err)
	}
	if err != nil {
		logger.Warn("import failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logger.Info("import finished",
		"rows", result.TotalRows,
		"inserted", result.InsertedCount,
		"skipped", result.SkippedCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	resp := map[string]any{
		"success":       true,
		"insertedCount": result.InsertedCount,
		"totalRows":     result.TotalRows,
		"skippedCount":  result.SkippedCount,
	}
	if result.NoData {
		resp["message"] = "No data found in file"
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleExportProducts streams the catalog as an .xlsx attachment.
func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.ExportProducts(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	filename := "products_" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "error", err)
	}
}
