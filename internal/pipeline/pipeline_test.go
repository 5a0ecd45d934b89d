package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/campusops/gradesheet/internal/extract"
	"github.com/campusops/gradesheet/internal/gradescale"
	"github.com/campusops/gradesheet/internal/report"
)

func mustScale(t *testing.T) *gradescale.Scale {
	t.Helper()
	s, err := gradescale.Load("")
	if err != nil {
		t.Fatalf("load scale: %v", err)
	}
	return s
}

func sheet(reg string, body string) string {
	return "Registration No: " + reg + "\n" + body
}

func TestProcessBatch(t *testing.T) {
	docs := []extract.Document{
		{Name: "s1.txt", Text: sheet("IT20000001", "IT2020 A\nIT2090 B+\n")},
		{Name: "s2.txt", Text: sheet("IT20000002", "IT2020 B\n")},
		{Name: "bad.txt", Text: "IT2020 A\n"}, // no registration number
	}
	rep, err := Process(context.Background(), docs, mustScale(t), Options{Workers: 2})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if rep.Students != 2 {
		t.Fatalf("students = %d, want 2", rep.Students)
	}
	if len(rep.Anomalies) != 1 || rep.Anomalies[0].Doc != "bad.txt" {
		t.Fatalf("anomalies = %+v", rep.Anomalies)
	}
	top := rep.Set.Rows[0]
	// IT2020 A (4.0 x 4) + IT2090 B+ (3.3 x 2) -> 3.77
	if top.RegNumber != "IT20000001" || *top.GPA != 3.77 || *top.Rank != 1 || *top.Percentile != 100 {
		t.Fatalf("top row = %+v gpa=%v", top, *top.GPA)
	}
	second := rep.Set.Rows[1]
	if *second.Rank != 2 || *second.Percentile != 0 {
		t.Fatalf("second row = %+v", second)
	}
}

func TestProcessMergesAcrossDocuments(t *testing.T) {
	docs := []extract.Document{
		{Name: "sem1.txt", Text: sheet("IT20000001", "IT2020 A\n")},
		{Name: "sem2.txt", Text: sheet("IT20000001", "IT2030 B\n")},
	}
	rep, err := Process(context.Background(), docs, mustScale(t), Options{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if rep.Students != 1 {
		t.Fatalf("students = %d, want 1", rep.Students)
	}
	if got := len(rep.Set.Rows[0].Modules); got != 2 {
		t.Fatalf("modules = %d, want 2", got)
	}
	// (4.0*4 + 3.0*4) / 8 = 3.5
	if *rep.Set.Rows[0].GPA != 3.5 {
		t.Fatalf("gpa = %v", *rep.Set.Rows[0].GPA)
	}
}

func TestProcessDeterministic(t *testing.T) {
	docs := make([]extract.Document, 0, 8)
	regs := []string{"IT20000001", "IT20000002", "IT20000003", "IT20000004",
		"IT20000005", "IT20000006", "IT20000007", "IT20000008"}
	bodies := []string{"IT2020 A\n", "IT2020 B\n", "IT2020 B\n", "IT2020 C+\n",
		"IT2020 A-\n", "IT2020 D\n", "IT2020 92\n", "IT2020 E+\n"}
	for i, reg := range regs {
		docs = append(docs, extract.Document{Name: reg + ".txt", Text: sheet(reg, bodies[i])})
	}

	run := func(workers int) []byte {
		rep, err := Process(context.Background(), docs, mustScale(t), Options{Workers: workers})
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, rep.Set); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	first := run(1)
	for _, workers := range []int{1, 2, 8} {
		if !bytes.Equal(first, run(workers)) {
			t.Fatalf("output depends on worker count %d", workers)
		}
	}
}

func TestProcessUnrecognizedOnlyStudent(t *testing.T) {
	docs := []extract.Document{
		{Name: "a.txt", Text: sheet("IT20000001", "IT2020 A\n")},
		// E+ is grade-shaped but not on the scale, so the entry is
		// extracted and then excluded by aggregation.
		{Name: "b.txt", Text: sheet("IT20000002", "IT2020 E+\n")},
	}
	rep, err := Process(context.Background(), docs, mustScale(t), Options{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	row, ok := rep.Set.Student("IT20000002")
	if !ok || !row.Unranked || row.GPA != nil {
		t.Fatalf("row = %+v, ok=%v", row, ok)
	}
	if len(row.Modules) != 1 || row.Modules[0].Note == "" {
		t.Fatalf("exclusion reason missing: %+v", row.Modules)
	}
}

func TestProcessNoValidInput(t *testing.T) {
	docs := []extract.Document{
		{Name: "junk1.txt", Text: "nothing here\n"},
		{Name: "junk2.txt", Text: "Registration No: IT20000001\nno pairs\n"},
	}
	rep, err := Process(context.Background(), docs, mustScale(t), Options{})
	if !errors.Is(err, ErrNoValidInput) {
		t.Fatalf("err = %v, want ErrNoValidInput", err)
	}
	if rep == nil || len(rep.Anomalies) != 2 {
		t.Fatalf("report = %+v", rep)
	}
}
