// Package extract pulls raw (registration, module, grade) tuples out of the
// decoded text of one result-sheet document. It is deliberately tolerant:
// lines that match no known pattern are skipped, and all document-level
// failures are reported as anomalies instead of errors so a batch can keep
// going.
package extract

import "strings"

// Document is the decoded text of one uploaded result sheet. Name is the
// original filename, used only for anomaly attribution.
type Document struct {
	Name string
	Text string
}

// Entry is one raw module/grade observation attributed to a registration
// number. It carries no identity beyond its triple and is consumed
// immediately by aggregation.
type Entry struct {
	RegNumber string
	Module    string
	Grade     string
}

// Anomaly is a document-level extraction failure. The document it names
// contributes nothing to the batch; processing of other documents continues.
type Anomaly struct {
	Doc    string `json:"doc"`
	Reason string `json:"reason"`
}

// Scanner applies the recognizer rules to documents. Configure with options;
// the zero Scanner from NewScanner is ready to use.
type Scanner struct {
	maxDocBytes int
}

type Option func(*Scanner)

// WithMaxDocBytes rejects documents larger than n bytes as structural
// anomalies. Zero disables the limit.
func WithMaxDocBytes(n int) Option { return func(s *Scanner) { s.maxDocBytes = n } }

func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Scan extracts all module/grade pairs from one document. A document with no
// recognizable registration number, or with a registration number but zero
// valid pairs, yields no entries and one anomaly.
func (s *Scanner) Scan(doc Document) ([]Entry, []Anomaly) {
	if s.maxDocBytes > 0 && len(doc.Text) > s.maxDocBytes {
		return nil, []Anomaly{{Doc: doc.Name, Reason: "document exceeds size limit"}}
	}

	lines := strings.Split(doc.Text, "\n")

	reg := findRegNumber(lines)
	if reg == "" {
		return nil, []Anomaly{{Doc: doc.Name, Reason: "no registration number found"}}
	}

	var entries []Entry

	// pendingModule is the nearest module code still waiting for a grade
	// token. The pairing lookahead is bounded to one line past the module's
	// own line.
	pendingModule := ""
	pendingLine := -1

	for i, line := range lines {
		if pendingModule != "" && i-pendingLine > 1 {
			pendingModule = ""
		}
		for _, raw := range strings.Fields(line) {
			tok := strings.Trim(raw, ",;:()[]")
			switch {
			case moduleCodePattern.MatchString(tok):
				pendingModule = strings.ToUpper(tok)
				pendingLine = i
			case pendingModule != "" && gradeTokenPattern.MatchString(tok):
				entries = append(entries, Entry{
					RegNumber: reg,
					Module:    pendingModule,
					Grade:     strings.ToUpper(tok),
				})
				pendingModule = ""
			}
		}
	}

	if len(entries) == 0 {
		return nil, []Anomaly{{Doc: doc.Name, Reason: "no module/grade pairs found"}}
	}
	return entries, nil
}

// findRegNumber locates the document's owning registration number. A labeled
// identifier line wins over a bare token so headers like
// "Registration No: IT20123456" are never confused with body noise.
func findRegNumber(lines []string) string {
	for _, line := range lines {
		if m := regLabelPattern.FindStringSubmatch(line); m != nil {
			return normalizeRegNumber(m[1])
		}
	}
	for _, line := range lines {
		if m := regTokenPattern.FindString(line); m != "" {
			return normalizeRegNumber(m)
		}
	}
	return ""
}

// NormalizeRegNumber canonicalizes a registration number for grouping and
// lookup: uppercase, no interior spaces.
func NormalizeRegNumber(s string) string { return normalizeRegNumber(s) }

func normalizeRegNumber(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
