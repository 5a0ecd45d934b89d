// Package gpa turns raw extracted entries into per-student weighted GPA
// records using a shared grade scale.
package gpa

import (
	"math"

	"github.com/campusops/gradesheet/internal/extract"
	"github.com/campusops/gradesheet/internal/gradescale"
)

// Notes attached to module detail entries. Entries with
// NoteUnrecognizedGrade are excluded from the GPA sum; NoteDefaultCredit
// entries count with the fallback weight and are flagged for transparency
// only.
const (
	NoteUnrecognizedGrade = "unrecognized grade"
	NoteDefaultCredit     = "unknown module, default credit"
)

// ModuleEntry is one module observation in a student's detail view,
// including entries excluded from the GPA so the caller can surface them.
type ModuleEntry struct {
	Module   string  `json:"module"`
	Grade    string  `json:"grade"`
	Point    float64 `json:"point"`
	Credit   float64 `json:"credit"`
	Included bool    `json:"included"`
	Note     string  `json:"note,omitempty"`
}

// StudentRecord is one student's aggregated result. GPADefined is false when
// no entry contributed credits: such students are listed but never ranked,
// and their GPA field is meaningless rather than zero.
type StudentRecord struct {
	RegNumber    string
	GPA          float64
	GPADefined   bool
	TotalCredits float64
	Modules      []ModuleEntry
}

// Aggregate groups entries by registration number in first-seen order and
// computes each student's credit-weighted GPA, rounded to two decimals.
// Unrecognized grade tokens are retained in the detail but excluded from the
// sums; unknown modules count with the scale's default credit weight.
func Aggregate(entries []extract.Entry, scale *gradescale.Scale) []StudentRecord {
	byReg := make(map[string]int)
	records := make([]StudentRecord, 0)

	for _, e := range entries {
		idx, seen := byReg[e.RegNumber]
		if !seen {
			idx = len(records)
			byReg[e.RegNumber] = idx
			records = append(records, StudentRecord{RegNumber: e.RegNumber})
		}

		credit, knownModule := scale.CreditWeightOf(e.Module)
		me := ModuleEntry{Module: e.Module, Grade: e.Grade, Credit: credit}
		if !knownModule {
			me.Note = NoteDefaultCredit
		}

		if point, ok := scale.GradePointOf(e.Grade); ok {
			me.Point = point
			me.Included = true
		} else {
			me.Note = NoteUnrecognizedGrade
		}
		records[idx].Modules = append(records[idx].Modules, me)
	}

	for i := range records {
		var points, credits float64
		for _, me := range records[i].Modules {
			if !me.Included {
				continue
			}
			points += me.Point * me.Credit
			credits += me.Credit
		}
		records[i].TotalCredits = credits
		if credits > 0 {
			records[i].GPA = round2(points / credits)
			records[i].GPADefined = true
		}
	}
	return records
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
