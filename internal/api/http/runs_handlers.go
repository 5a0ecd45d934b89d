package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authmw "github.com/campusops/gradesheet/internal/auth/middleware"
	"github.com/campusops/gradesheet/internal/extract"
	"github.com/campusops/gradesheet/internal/gradescale"
	"github.com/campusops/gradesheet/internal/pipeline"
	"github.com/campusops/gradesheet/internal/report"
	"github.com/campusops/gradesheet/internal/runs"
	"github.com/campusops/gradesheet/internal/storage"
)

// POST /runs accepts a multipart upload of one or more result-sheet text
// documents. The whole batch is processed in one pass; the archived run
// comes back with the result table and the processing report.
func CreateRunHandler(store runs.Store, bs storage.BlobStore, scale *gradescale.Scale, opts pipeline.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			http.Error(w, "multipart form required", http.StatusBadRequest)
			return
		}
		fhs := r.MultipartForm.File["files"]
		if len(fhs) == 0 {
			fhs = r.MultipartForm.File["file"]
		}
		if len(fhs) == 0 {
			http.Error(w, "at least one file required", http.StatusBadRequest)
			return
		}

		runID := uuid.NewString()
		docs := make([]extract.Document, 0, len(fhs))
		for _, fh := range fhs {
			f, err := fh.Open()
			if err != nil {
				http.Error(w, "open upload: "+err.Error(), http.StatusBadRequest)
				return
			}
			// read one byte past the limit so the extractor sees and
			// reports oversized documents instead of silently truncating
			limit := int64(opts.MaxDocBytes)
			if limit <= 0 {
				limit = 64 << 20
			}
			data, err := io.ReadAll(io.LimitReader(f, limit+1))
			f.Close()
			if err != nil {
				http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
				return
			}
			if _, err := bs.Put(storage.DocKey(runID, fh.Filename), bytes.NewReader(data)); err != nil {
				http.Error(w, "retain document: "+err.Error(), http.StatusInternalServerError)
				return
			}
			docs = append(docs, extract.Document{Name: fh.Filename, Text: string(data)})
		}

		rep, err := pipeline.Process(r.Context(), docs, scale, opts)
		if errors.Is(err, pipeline.ErrNoValidInput) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(rep)
			return
		}
		if err != nil {
			http.Error(w, "process: "+err.Error(), http.StatusInternalServerError)
			return
		}

		run := runs.Run{
			ID:           runID,
			CreatedBy:    authmw.SubjectFromContext(r.Context()),
			CreatedAt:    time.Now().Unix(),
			DocCount:     rep.DocCount,
			StudentCount: rep.Students,
			Set:          rep.Set,
			Anomalies:    rep.Anomalies,
		}
		if err := store.SaveRun(r.Context(), run); err != nil {
			http.Error(w, "archive run: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			runs.Run
			Histogram []report.Bucket `json:"histogram"`
		}{run, rep.Histogram})
	}
}

// GET /runs/{runID}
func GetRunHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := store.GetRun(r.Context(), chi.URLParam(r, "runID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(run)
	}
}

// GET /runs
func ListRunsHandler(store runs.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListRuns(r.Context(), 50)
		if err != nil {
			http.Error(w, "list runs: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

func writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, runs.ErrNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
