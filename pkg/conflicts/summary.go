package conflicts

// Summary is the aggregate view of a conflict list: per-type counts, a
// severity histogram, the mean confidence, and a 0-100 risk score.
type Summary struct {
	Total             int              `json:"total" yaml:"total"`
	ByType            map[Type]int     `json:"by_type" yaml:"by_type"`
	BySeverity        map[Severity]int `json:"by_severity" yaml:"by_severity"`
	AverageConfidence float64          `json:"average_confidence" yaml:"average_confidence"`
	RiskScore         float64          `json:"risk_score" yaml:"risk_score"`
}

// Summarize reduces a conflict list to its Summary. The reduction is pure:
// the same list always yields the same summary, and an empty or nil list
// yields zero counts, zero confidence, and zero risk.
func Summarize(list []Conflict) Summary {
	summary := Summary{
		Total:      len(list),
		ByType:     make(map[Type]int),
		BySeverity: make(map[Severity]int),
	}

	if len(list) == 0 {
		return summary
	}

	var confidenceSum float64
	var severe int
	for i := range list {
		summary.ByType[list[i].Type]++
		summary.BySeverity[list[i].Severity]++
		confidenceSum += list[i].Confidence
		if list[i].Severity == SeverityHigh || list[i].Severity == SeverityCritical {
			severe++
		}
	}

	summary.AverageConfidence = confidenceSum / float64(len(list))
	summary.RiskScore = float64(severe) / float64(len(list)) * 100

	return summary
}
