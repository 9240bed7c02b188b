package detect

import (
	"sort"

	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/record"
)

// TagConfig tunes the tag detector.
type TagConfig struct {
	// SubsetLossEscalation controls whether one side's tags being a
	// strict subset of the other's escalates severity as a data-loss
	// signal. Enabled by default; set SuppressSubsetLoss to turn it off.
	SuppressSubsetLoss bool
}

// TagDetector flags record pairs whose tag sets differ. Order is ignored;
// only membership matters. Divergence where one side holds a strict
// subset of the other reads as potential data loss and scores above
// two-sided additions.
type TagDetector struct {
	cfg TagConfig
}

// NewTagDetector creates a tag detector with the given configuration.
func NewTagDetector(cfg TagConfig) *TagDetector {
	return &TagDetector{cfg: cfg}
}

// Type returns the conflict type this detector reports.
func (d *TagDetector) Type() conflicts.Type {
	return conflicts.TypeTagDifference
}

func (d *TagDetector) metadata() conflicts.Metadata {
	return conflicts.Metadata{
		Detector:  "tags",
		Version:   "1.0.0",
		Algorithm: "set-divergence",
	}
}

// Detect compares the two records' tag sets.
func (d *TagDetector) Detect(a, b record.Record) (*conflicts.Draft, error) {
	tagsA, okA := a.Tags()
	tagsB, okB := b.Tags()
	if !okA || !okB {
		return nil, nil
	}

	setA := toSet(tagsA)
	setB := toSet(tagsB)

	onlyA := difference(setA, setB)
	onlyB := difference(setB, setA)
	if len(onlyA) == 0 && len(onlyB) == 0 {
		// Same membership, possibly different order.
		return nil, nil
	}

	intersection := len(setA) - len(onlyA)
	union := len(setA) + len(setB) - intersection
	ratio := float64(len(onlyA)+len(onlyB)) / float64(union)

	// A strict subset means one side has gained nothing and lost
	// everything the other side diverged by.
	subsetLoss := (len(onlyA) == 0 || len(onlyB) == 0) && !d.cfg.SuppressSubsetLoss

	return &conflicts.Draft{
		Severity:   d.severity(ratio, subsetLoss),
		Confidence: d.confidence(ratio, subsetLoss),
		Details: conflicts.TagDetails{
			TagsA:           tagsA,
			TagsB:           tagsB,
			OnlyA:           onlyA,
			OnlyB:           onlyB,
			DivergenceRatio: ratio,
			SubsetLoss:      subsetLoss,
		},
		Metadata: d.metadata(),
	}, nil
}

// severity scales with the share of non-overlapping tags. Subset loss
// escalates: tags present on only one side may be about to disappear.
func (d *TagDetector) severity(ratio float64, subsetLoss bool) conflicts.Severity {
	if subsetLoss {
		if ratio >= 0.5 {
			return conflicts.SeverityHigh
		}
		return conflicts.SeverityMedium
	}
	if ratio >= 0.75 {
		return conflicts.SeverityMedium
	}
	return conflicts.SeverityLow
}

func (d *TagDetector) confidence(ratio float64, subsetLoss bool) float64 {
	c := 0.6 + 0.3*ratio
	if subsetLoss {
		c += 0.1
	}
	return clampConfidence(c)
}

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

// difference returns the sorted members of a not present in b.
func difference(a, b map[string]bool) []string {
	var out []string
	for t := range a {
		if !b[t] {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
