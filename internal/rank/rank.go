// Package rank assigns standard-competition ranks and percentiles across a
// cohort of computed GPA records.
package rank

import (
	"math"
	"sort"

	"github.com/campusops/gradesheet/internal/gpa"
)

// Mode selects the percentile formula. Both are monotonic in rank; they
// differ only at the boundaries (exclusive pins the bottom rank to 0,
// inclusive never reaches 0).
type Mode string

const (
	// ModeExclusive: 100 x (N - rank) / (N - 1); top rank 100, bottom 0.
	ModeExclusive Mode = "exclusive"
	// ModeInclusive: 100 x (N - rank + 1) / N.
	ModeInclusive Mode = "inclusive"
)

// ParseMode maps a configuration string to a Mode, defaulting to exclusive.
func ParseMode(s string) Mode {
	if Mode(s) == ModeInclusive {
		return ModeInclusive
	}
	return ModeExclusive
}

// Record is a student record extended with its cohort position. Students
// without a defined GPA pass through with Unranked set and zero rank.
type Record struct {
	gpa.StudentRecord
	Rank       int
	Percentile float64
	Unranked   bool
}

// Rank orders the defined-GPA cohort by GPA descending and assigns
// standard-competition ranks: equal GPAs share a rank, and the next distinct
// GPA gets rank = (count of strictly higher) + 1. Ties keep their original
// batch order; no secondary key breaks them. Undefined-GPA students are
// appended at the tail, unranked, in batch order.
func Rank(records []gpa.StudentRecord, mode Mode) []Record {
	ranked := make([]Record, 0, len(records))
	var tail []Record

	for _, r := range records {
		if r.GPADefined {
			ranked = append(ranked, Record{StudentRecord: r})
		} else {
			tail = append(tail, Record{StudentRecord: r, Unranked: true})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GPA > ranked[j].GPA
	})

	n := len(ranked)
	for i := range ranked {
		if i > 0 && ranked[i].GPA == ranked[i-1].GPA {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
		ranked[i].Percentile = percentile(ranked[i].Rank, n, mode)
	}

	return append(ranked, tail...)
}

func percentile(rank, n int, mode Mode) float64 {
	if n <= 1 {
		return 100
	}
	var p float64
	switch mode {
	case ModeInclusive:
		p = 100 * float64(n-rank+1) / float64(n)
	default:
		p = 100 * float64(n-rank) / float64(n-1)
	}
	return math.Round(p*100) / 100
}
