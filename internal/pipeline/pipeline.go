// Package pipeline runs one processing batch end to end: extract each
// document, merge, aggregate, rank, and shape the result table. A run is
// stateless; everything it produces lives in the returned Report.
package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/campusops/gradesheet/internal/extract"
	"github.com/campusops/gradesheet/internal/gpa"
	"github.com/campusops/gradesheet/internal/gradescale"
	"github.com/campusops/gradesheet/internal/rank"
	"github.com/campusops/gradesheet/internal/report"
)

// ErrNoValidInput is returned when no document in the batch contributed a
// single student record.
var ErrNoValidInput = errors.New("no valid student records in any document")

type Options struct {
	Workers        int // concurrent document extractions; <=0 means 4
	MaxDocBytes    int // per-document size limit; 0 disables
	PercentileMode rank.Mode
}

// Report is the full outcome of one batch: the result table plus every
// anomaly collected along the way, so the caller can render a processing
// report instead of losing them.
type Report struct {
	Set       report.ResultSet  `json:"result"`
	Anomalies []extract.Anomaly `json:"anomalies"`
	DocCount  int               `json:"doc_count"`
	Students  int               `json:"student_count"`
	Histogram []report.Bucket   `json:"histogram"`
}

// Process extracts all documents concurrently, then merges deterministically
// in upload order (intra-document order preserved) before aggregation, so
// output never depends on extraction completion order. Per-document
// failures become anomalies; only a batch with zero students is fatal.
func Process(ctx context.Context, docs []extract.Document, scale *gradescale.Scale, opts Options) (*Report, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	scanner := extract.NewScanner(extract.WithMaxDocBytes(opts.MaxDocBytes))

	perDoc := make([][]extract.Entry, len(docs))
	perDocAnoms := make([][]extract.Anomaly, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perDoc[i], perDocAnoms[i] = scanner.Scan(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []extract.Entry
	var anomalies []extract.Anomaly
	for i := range docs {
		entries = append(entries, perDoc[i]...)
		anomalies = append(anomalies, perDocAnoms[i]...)
	}
	if anomalies == nil {
		anomalies = []extract.Anomaly{}
	}

	records := gpa.Aggregate(entries, scale)
	if len(records) == 0 {
		return &Report{Anomalies: anomalies, DocCount: len(docs)}, ErrNoValidInput
	}

	set := report.Build(rank.Rank(records, opts.PercentileMode))
	return &Report{
		Set:       set,
		Anomalies: anomalies,
		DocCount:  len(docs),
		Students:  len(set.Rows),
		Histogram: set.Histogram(0.25),
	}, nil
}
