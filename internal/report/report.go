// Package report shapes ranked records into the ResultSet artifact consumed
// by presentation and export collaborators.
package report

import (
	"sort"

	"github.com/campusops/gradesheet/internal/extract"
	"github.com/campusops/gradesheet/internal/gpa"
	"github.com/campusops/gradesheet/internal/rank"
)

// Row is one student in the final table. GPA, Rank and Percentile are nil
// for unranked students: an undefined GPA is shown as absent, never as zero.
type Row struct {
	RegNumber    string            `json:"registration_no"`
	GPA          *float64          `json:"gpa"`
	Rank         *int              `json:"rank"`
	Percentile   *float64          `json:"percentile"`
	TotalCredits float64           `json:"total_credits"`
	Unranked     bool              `json:"unranked"`
	Modules      []gpa.ModuleEntry `json:"modules,omitempty"`
}

// ResultSet is the ordered artifact of one processing run: ranked students
// by ascending rank, then unranked students in batch order.
type ResultSet struct {
	Rows []Row `json:"rows"`
}

// Build assembles the ResultSet from ranked records. Pure shaping: no
// computation beyond ordering.
func Build(records []rank.Record) ResultSet {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row := Row{
			RegNumber:    r.RegNumber,
			TotalCredits: r.TotalCredits,
			Unranked:     r.Unranked,
			Modules:      r.Modules,
		}
		if !r.Unranked {
			g, rk, p := r.GPA, r.Rank, r.Percentile
			row.GPA, row.Rank, row.Percentile = &g, &rk, &p
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Unranked != rows[j].Unranked {
			return !rows[i].Unranked
		}
		if rows[i].Unranked {
			return false // keep batch order within the unranked tail
		}
		return *rows[i].Rank < *rows[j].Rank
	})
	return ResultSet{Rows: rows}
}

// Student returns the row for a registration number, matched
// case-insensitively and ignoring spaces.
func (rs ResultSet) Student(regNo string) (Row, bool) {
	want := extract.NormalizeRegNumber(regNo)
	for _, row := range rs.Rows {
		if row.RegNumber == want {
			return row, true
		}
	}
	return Row{}, false
}

// Bucket is one bar of the GPA distribution: students whose GPA g satisfies
// From <= g < From+width.
type Bucket struct {
	From  float64 `json:"from"`
	Count int     `json:"count"`
}

// Histogram buckets the defined GPAs at the given width (0 defaults to
// 0.25). Unranked students are not counted.
func (rs ResultSet) Histogram(width float64) []Bucket {
	if width <= 0 {
		width = 0.25
	}
	counts := map[int]int{}
	for _, row := range rs.Rows {
		if row.GPA == nil {
			continue
		}
		counts[int(*row.GPA/width)]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{From: float64(k) * width, Count: counts[k]})
	}
	return out
}
