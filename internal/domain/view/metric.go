package view

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MetricKind tells how a metric card value is displayed.
type MetricKind int

const (
	// KindNumber is a ratio shown with three decimals.
	KindNumber MetricKind = iota
	// KindCount is an integer count.
	KindCount
	// KindText is a non-numeric placeholder kept verbatim.
	KindText
)

// MetricValue is a metric card value: a number or a string.
type MetricValue struct {
	Kind   MetricKind
	Number float64
	Text   string
}

// Number creates a ratio metric value.
func Number(v float64) MetricValue { return MetricValue{Kind: KindNumber, Number: v} }

// Count creates an integer metric value.
func Count(n int) MetricValue { return MetricValue{Kind: KindCount, Number: float64(n)} }

// Text creates a non-numeric metric value.
func Text(s string) MetricValue { return MetricValue{Kind: KindText, Text: s} }

// ParseMetric turns displayed metric text back into a value.
// Integers become counts, decimals become numbers, anything else is kept as text.
func ParseMetric(s string) MetricValue {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Count(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	return Text(s)
}

// Display formats the value the way metric cards show it.
func (m MetricValue) Display() string {
	switch m.Kind {
	case KindCount:
		return strconv.Itoa(int(m.Number))
	case KindText:
		return m.Text
	default:
		return strconv.FormatFloat(m.Number, 'f', 3, 64)
	}
}

// MarshalJSON emits numbers as JSON numbers and text as strings.
func (m MetricValue) MarshalJSON() ([]byte, error) {
	if m.Kind == KindText {
		return json.Marshal(m.Text)
	}
	return json.Marshal(m.Number)
}

// MetricLabel derives a card label from an upstream metric key: the cm_ prefix is
// dropped, underscores become spaces and words are title-cased ("cm_f1" -> "F1").
func MetricLabel(key string) string {
	key = strings.TrimPrefix(key, "cm_")
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}

// Metric card labels produced for a single document.
var (
	LabelDocuments = "Documents"
	LabelPrecision = MetricLabel("cm_precision")
	LabelRecall    = MetricLabel("cm_recall")
	LabelF1        = MetricLabel("cm_f1")
	LabelAccuracy  = MetricLabel("cm_accuracy")
)
