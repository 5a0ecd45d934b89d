package gradescale

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scale holds the grade-point table and per-module credit weights for one
// process. It is loaded once at startup and never mutated afterwards, so it
// is safe to share across concurrent pipeline runs without locking.
type Scale struct {
	points        map[string]float64
	bands         []Band
	credits       map[string]float64
	defaultCredit float64
	maxPoint      float64
}

// Band maps numeric scores at or above Min to Point. Bands are kept sorted
// by Min descending; the first band whose Min the score reaches wins.
type Band struct {
	Min   float64 `yaml:"min"`
	Point float64 `yaml:"point"`
}

type fileScale struct {
	GradePoints   map[string]float64 `yaml:"grade_points"`
	ScoreBands    []Band             `yaml:"score_bands"`
	Credits       map[string]float64 `yaml:"credits"`
	DefaultCredit float64            `yaml:"default_credit"`
}

// Load builds a Scale from the YAML file at path, or from built-in defaults
// when path is empty. File sections that are present replace the
// corresponding default section wholesale.
func Load(path string) (*Scale, error) {
	fs := defaultFileScale()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("scale config: %w", err)
		}
		var override fileScale
		if err := yaml.Unmarshal(raw, &override); err != nil {
			return nil, fmt.Errorf("scale config %s: %w", path, err)
		}
		if len(override.GradePoints) > 0 {
			fs.GradePoints = override.GradePoints
		}
		if len(override.ScoreBands) > 0 {
			fs.ScoreBands = override.ScoreBands
		}
		if len(override.Credits) > 0 {
			fs.Credits = override.Credits
		}
		if override.DefaultCredit > 0 {
			fs.DefaultCredit = override.DefaultCredit
		}
	}

	return build(fs)
}

func build(fs fileScale) (*Scale, error) {
	s := &Scale{
		points:        make(map[string]float64, len(fs.GradePoints)),
		credits:       make(map[string]float64, len(fs.Credits)),
		defaultCredit: fs.DefaultCredit,
	}
	for tok, gp := range fs.GradePoints {
		if gp < 0 {
			return nil, fmt.Errorf("grade %q: negative grade point %v", tok, gp)
		}
		s.points[normalizeToken(tok)] = gp
		if gp > s.maxPoint {
			s.maxPoint = gp
		}
	}
	for _, b := range fs.ScoreBands {
		if b.Point < 0 || b.Point > s.maxPoint {
			return nil, fmt.Errorf("score band %v: point %v outside scale [0,%v]", b.Min, b.Point, s.maxPoint)
		}
	}
	s.bands = append(s.bands, fs.ScoreBands...)
	sort.Slice(s.bands, func(i, j int) bool { return s.bands[i].Min > s.bands[j].Min })

	for mod, cr := range fs.Credits {
		if cr <= 0 {
			return nil, fmt.Errorf("module %q: non-positive credit weight %v", mod, cr)
		}
		s.credits[strings.ToUpper(mod)] = cr
	}
	if s.defaultCredit <= 0 {
		return nil, fmt.Errorf("default credit weight must be positive, got %v", s.defaultCredit)
	}
	return s, nil
}

// GradePointOf resolves a grade token to its grade point. Letter grades are
// looked up in the table; bare numeric scores fall through to the score
// bands. ok is false for tokens the scale does not recognize; callers must
// exclude those entries rather than substitute a real grade point.
func (s *Scale) GradePointOf(token string) (float64, bool) {
	tok := normalizeToken(token)
	if gp, ok := s.points[tok]; ok {
		return gp, true
	}
	score, err := strconv.ParseFloat(tok, 64)
	if err != nil || score < 0 || score > 100 {
		return 0, false
	}
	for _, b := range s.bands {
		if score >= b.Min {
			return b.Point, true
		}
	}
	return 0, false
}

// CreditWeightOf returns the credit weight for a module code. Unknown
// modules fall back to the default weight; known reports whether the module
// was in the table so callers can surface the fallback.
func (s *Scale) CreditWeightOf(module string) (weight float64, known bool) {
	if cr, ok := s.credits[strings.ToUpper(module)]; ok {
		return cr, true
	}
	return s.defaultCredit, false
}

// MaxPoint is the highest grade point on the scale (the GPA ceiling).
func (s *Scale) MaxPoint() float64 { return s.maxPoint }

func normalizeToken(tok string) string {
	return strings.ToUpper(strings.TrimSpace(tok))
}
