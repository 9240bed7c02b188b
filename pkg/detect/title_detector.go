package detect

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/constants"
	"github.com/readtrack/syncguard/pkg/record"
)

// TitleConfig tunes the title detector.
type TitleConfig struct {
	// SimilarityFloor is the similarity below which two titles read as
	// different works rather than formatting variants.
	SimilarityFloor float64
}

func (c TitleConfig) withDefaults() TitleConfig {
	if c.SimilarityFloor == 0 {
		c.SimilarityFloor = constants.TitleSimilarityFloor
	}
	return c
}

// TitleDetector flags record pairs whose titles differ beyond trivial
// whitespace, punctuation, and case normalization. Titles rarely change
// legitimately, so any non-trivial difference is at least MEDIUM.
type TitleDetector struct {
	cfg TitleConfig
}

// NewTitleDetector creates a title detector with the given configuration.
func NewTitleDetector(cfg TitleConfig) *TitleDetector {
	return &TitleDetector{cfg: cfg.withDefaults()}
}

// Type returns the conflict type this detector reports.
func (d *TitleDetector) Type() conflicts.Type {
	return conflicts.TypeTitleDifference
}

func (d *TitleDetector) metadata() conflicts.Metadata {
	return conflicts.Metadata{
		Detector:  "title",
		Version:   "1.0.0",
		Algorithm: "normalized-jaccard",
	}
}

// Detect compares the two records' titles.
func (d *TitleDetector) Detect(a, b record.Record) (*conflicts.Draft, error) {
	titleA, okA := a.Title()
	titleB, okB := b.Title()
	if !okA || !okB || titleA == "" || titleB == "" {
		return nil, nil
	}

	normA := normalizeTitle(titleA)
	normB := normalizeTitle(titleB)
	if normA == normB {
		// Pure formatting drift.
		return nil, nil
	}

	similarity := jaccardWords(normA, normB)

	return &conflicts.Draft{
		Severity:   d.severity(similarity),
		Confidence: d.confidence(similarity),
		Details: conflicts.TitleDetails{
			TitleA:      titleA,
			TitleB:      titleB,
			NormalizedA: normA,
			NormalizedB: normB,
			Similarity:  similarity,
		},
		Metadata: d.metadata(),
	}, nil
}

func (d *TitleDetector) severity(similarity float64) conflicts.Severity {
	if similarity < d.cfg.SimilarityFloor {
		return conflicts.SeverityHigh
	}
	return conflicts.SeverityMedium
}

// confidence is inversely tied to similarity: near-identical titles are
// more likely a formatting artifact than a genuine conflict.
func (d *TitleDetector) confidence(similarity float64) float64 {
	return clampConfidence(0.5 + 0.5*(1-similarity))
}

// normalizeTitle reduces a title to its comparable core: Unicode
// compatibility normalization, case folding, punctuation and symbols
// replaced by spaces, whitespace collapsed.
func normalizeTitle(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(r)
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

// jaccardWords computes Jaccard similarity over the word sets of two
// normalized strings.
func jaccardWords(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}

	intersection := 0
	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		if setB[w] {
			continue
		}
		setB[w] = true
		if setA[w] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
