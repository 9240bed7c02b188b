package conflicts

import "time"

// TimestampDetails explains a TIMESTAMP_CONFLICT: both raw values, the
// normalized epoch milliseconds, the gap between them, and the full
// consistency analysis that drove severity.
type TimestampDetails struct {
	RawA           any                  `json:"raw_a" yaml:"raw_a"`
	RawB           any                  `json:"raw_b" yaml:"raw_b"`
	FieldA         string               `json:"field_a" yaml:"field_a"`
	FieldB         string               `json:"field_b" yaml:"field_b"`
	NormalizedA    int64                `json:"normalized_a" yaml:"normalized_a"`
	NormalizedB    int64                `json:"normalized_b" yaml:"normalized_b"`
	DeltaMillis    int64                `json:"delta_millis" yaml:"delta_millis"`
	Delta          time.Duration        `json:"delta" yaml:"delta"`
	Consistency    ConsistencyAnalysis  `json:"consistency" yaml:"consistency"`
	TimezoneOffset *TimezoneOffsetHours `json:"timezone_offset,omitempty" yaml:"timezone_offset,omitempty"`
}

// ConsistencyAnalysis records which side is chronologically newer and
// whether monotonically-expected fields regressed going older to newer.
type ConsistencyAnalysis struct {
	NewerSide   string       `json:"newer_side" yaml:"newer_side"` // "a" or "b"
	Consistent  bool         `json:"consistent" yaml:"consistent"`
	Regressions []Regression `json:"regressions,omitempty" yaml:"regressions,omitempty"`
}

// Regression is one monotonic field that lost ground from the older to
// the newer record.
type Regression struct {
	Field    string  `json:"field" yaml:"field"`
	OldValue float64 `json:"old_value" yaml:"old_value"`
	NewValue float64 `json:"new_value" yaml:"new_value"`
}

// TimezoneOffsetHours is an estimated integer-hour timezone offset
// difference between the two timestamps, when one is derivable.
type TimezoneOffsetHours struct {
	Hours int `json:"hours" yaml:"hours"`
}

// ProgressDetails explains a PROGRESS_MISMATCH.
type ProgressDetails struct {
	ProgressA    float64 `json:"progress_a" yaml:"progress_a"`
	ProgressB    float64 `json:"progress_b" yaml:"progress_b"`
	Gap          float64 `json:"gap" yaml:"gap"`
	NewerIsLower bool    `json:"newer_is_lower" yaml:"newer_is_lower"`
}

// TitleDetails explains a TITLE_DIFFERENCE.
type TitleDetails struct {
	TitleA      string  `json:"title_a" yaml:"title_a"`
	TitleB      string  `json:"title_b" yaml:"title_b"`
	NormalizedA string  `json:"normalized_a" yaml:"normalized_a"`
	NormalizedB string  `json:"normalized_b" yaml:"normalized_b"`
	Similarity  float64 `json:"similarity" yaml:"similarity"`
}

// TagDetails explains a TAG_DIFFERENCE.
type TagDetails struct {
	TagsA           []string `json:"tags_a" yaml:"tags_a"`
	TagsB           []string `json:"tags_b" yaml:"tags_b"`
	OnlyA           []string `json:"only_a,omitempty" yaml:"only_a,omitempty"`
	OnlyB           []string `json:"only_b,omitempty" yaml:"only_b,omitempty"`
	DivergenceRatio float64  `json:"divergence_ratio" yaml:"divergence_ratio"`
	SubsetLoss      bool     `json:"subset_loss" yaml:"subset_loss"`
}
