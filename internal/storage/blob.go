package storage

import "io"

// BlobStore retains the raw uploaded documents of each run for audit and
// re-processing.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}

// DocKey is the canonical blob key for one document of a run.
func DocKey(runID, filename string) string {
	return "runs/" + runID + "/" + filename
}
