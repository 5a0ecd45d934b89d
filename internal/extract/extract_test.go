package extract

import (
	"strings"
	"testing"
)

func TestScanLineLocalPairs(t *testing.T) {
	doc := Document{
		Name: "sheet.txt",
		Text: `Semester 2 Result Sheet
Registration No: IT20123456

IT2020 A    IT2021 B+
IT2030 85
some narrative line that matches nothing
`,
	}
	entries, anomalies := NewScanner().Scan(doc)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %+v", anomalies)
	}
	want := []Entry{
		{RegNumber: "IT20123456", Module: "IT2020", Grade: "A"},
		{RegNumber: "IT20123456", Module: "IT2021", Grade: "B+"},
		{RegNumber: "IT20123456", Module: "IT2030", Grade: "85"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestScanLookaheadPairing(t *testing.T) {
	// module code and grade split across adjacent lines
	doc := Document{
		Name: "split.txt",
		Text: "IT20123456\nIT2070\nA-\nIT2080\n\nB\n",
	}
	entries, anomalies := NewScanner().Scan(doc)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %+v", anomalies)
	}
	// IT2070/A- pairs within one line of lookahead; IT2080's grade is two
	// lines away and must NOT pair.
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Module != "IT2070" || entries[0].Grade != "A-" {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestScanNoRegistrationNumber(t *testing.T) {
	doc := Document{Name: "orphan.txt", Text: "IT2020 A\nIT2021 B\n"}
	entries, anomalies := NewScanner().Scan(doc)
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
	if len(anomalies) != 1 || anomalies[0].Doc != "orphan.txt" {
		t.Fatalf("anomalies = %+v", anomalies)
	}
	if !strings.Contains(anomalies[0].Reason, "registration") {
		t.Fatalf("reason = %q", anomalies[0].Reason)
	}
}

func TestScanNoPairs(t *testing.T) {
	doc := Document{Name: "empty.txt", Text: "Registration No: IT20123456\nnothing useful here\n"}
	entries, anomalies := NewScanner().Scan(doc)
	if len(entries) != 0 || len(anomalies) != 1 {
		t.Fatalf("entries=%+v anomalies=%+v", entries, anomalies)
	}
}

func TestScanSizeLimit(t *testing.T) {
	doc := Document{Name: "big.txt", Text: strings.Repeat("x", 100)}
	_, anomalies := NewScanner(WithMaxDocBytes(10)).Scan(doc)
	if len(anomalies) != 1 || !strings.Contains(anomalies[0].Reason, "size") {
		t.Fatalf("anomalies = %+v", anomalies)
	}
}

func TestBareRegTokenFallback(t *testing.T) {
	// no labeled line; the long digit run distinguishes the registration
	// number from module codes
	doc := Document{Name: "bare.txt", Text: "it20 987654\nIT20987654\nIT2020 C+\n"}
	entries, _ := NewScanner().Scan(doc)
	if len(entries) != 1 || entries[0].RegNumber != "IT20987654" {
		t.Fatalf("entries = %+v", entries)
	}
}
