package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusops/gradesheet/internal/report"
	"github.com/campusops/gradesheet/internal/runs"
	"github.com/campusops/gradesheet/internal/storage"
)

// GET /runs/{runID}/export serves the flat CSV of the archived result table.
func ExportRunCSVHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := store.GetRun(r.Context(), chi.URLParam(r, "runID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="results_`+run.ID+`.csv"`)
		if err := report.WriteCSV(w, run.Set); err != nil {
			// headers are already out; nothing sane left to send
			return
		}
	}
}

// GET /runs/{runID}/students/{regNo} is the per-student module detail
// drill-down, including entries excluded from the GPA with their reason.
func StudentDetailHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := store.GetRun(r.Context(), chi.URLParam(r, "runID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		row, ok := run.Set.Student(chi.URLParam(r, "regNo"))
		if !ok {
			http.Error(w, "student not found in run", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(row)
	}
}

// GET /runs/{runID}/documents/{name} serves the retained raw upload.
func DocumentHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := storage.DocKey(chi.URLParam(r, "runID"), chi.URLParam(r, "name"))
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.Copy(w, rc)
	}
}
