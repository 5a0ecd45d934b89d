package rank

import (
	"testing"

	"github.com/campusops/gradesheet/internal/gpa"
)

func defined(reg string, g float64) gpa.StudentRecord {
	return gpa.StudentRecord{RegNumber: reg, GPA: g, GPADefined: true}
}

func TestStandardCompetitionTies(t *testing.T) {
	cohort := []gpa.StudentRecord{
		defined("S1", 3.50),
		defined("S2", 3.50),
		defined("S3", 3.00),
	}
	out := Rank(cohort, ModeExclusive)
	wantRanks := []int{1, 1, 3}
	wantPct := []float64{100, 100, 0}
	for i := range out {
		if out[i].Rank != wantRanks[i] {
			t.Fatalf("rank[%d] = %d, want %d", i, out[i].Rank, wantRanks[i])
		}
		if out[i].Percentile != wantPct[i] {
			t.Fatalf("pct[%d] = %v, want %v", i, out[i].Percentile, wantPct[i])
		}
	}
}

func TestRankGapAfterTieBlock(t *testing.T) {
	cohort := []gpa.StudentRecord{
		defined("A", 4.0), defined("B", 4.0),
		defined("C", 3.5),
		defined("D", 3.0), defined("E", 3.0), defined("F", 3.0),
		defined("G", 2.0),
	}
	out := Rank(cohort, ModeExclusive)
	want := []int{1, 1, 3, 4, 4, 4, 7}
	for i := range out {
		if out[i].Rank != want[i] {
			t.Fatalf("rank[%d] = %d, want %d", i, out[i].Rank, want[i])
		}
	}
}

func TestSingleStudentPercentile(t *testing.T) {
	out := Rank([]gpa.StudentRecord{defined("ONLY", 2.5)}, ModeExclusive)
	if out[0].Rank != 1 || out[0].Percentile != 100 {
		t.Fatalf("rank=%d pct=%v", out[0].Rank, out[0].Percentile)
	}
}

func TestInclusiveMode(t *testing.T) {
	cohort := []gpa.StudentRecord{
		defined("A", 4.0),
		defined("B", 3.0),
	}
	out := Rank(cohort, ModeInclusive)
	// 100*(2-1+1)/2 = 100, 100*(2-2+1)/2 = 50
	if out[0].Percentile != 100 || out[1].Percentile != 50 {
		t.Fatalf("pct = %v, %v", out[0].Percentile, out[1].Percentile)
	}
}

func TestUndefinedGPAPassesThroughUnranked(t *testing.T) {
	cohort := []gpa.StudentRecord{
		{RegNumber: "U1"}, // undefined GPA, first in batch order
		defined("A", 3.0),
		{RegNumber: "U2"},
	}
	out := Rank(cohort, ModeExclusive)
	if len(out) != 3 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].RegNumber != "A" || out[0].Unranked {
		t.Fatalf("ranked head = %+v", out[0])
	}
	if !out[1].Unranked || !out[2].Unranked {
		t.Fatalf("tail not unranked: %+v", out[1:])
	}
	if out[1].RegNumber != "U1" || out[2].RegNumber != "U2" {
		t.Fatalf("tail order: %s, %s", out[1].RegNumber, out[2].RegNumber)
	}
	// cohort size excludes the unranked: single ranked student -> 100
	if out[0].Percentile != 100 {
		t.Fatalf("pct = %v", out[0].Percentile)
	}
}

func TestRankInvariants(t *testing.T) {
	cohort := []gpa.StudentRecord{
		defined("A", 3.9), defined("B", 2.1), defined("C", 3.9),
		defined("D", 1.0), defined("E", 2.1), defined("F", 0.0),
	}
	out := Rank(cohort, ModeExclusive)
	for i := 1; i < len(out); i++ {
		if out[i].Rank < out[i-1].Rank {
			t.Fatalf("rank not monotone at %d", i)
		}
		if out[i].GPA > out[i-1].GPA {
			t.Fatalf("gpa not descending at %d", i)
		}
		if out[i].GPA == out[i-1].GPA && out[i].Rank != out[i-1].Rank {
			t.Fatalf("tie broken at %d", i)
		}
	}
	for _, r := range out {
		if r.Percentile < 0 || r.Percentile > 100 {
			t.Fatalf("percentile out of bounds: %v", r.Percentile)
		}
	}
}
