// Package view defines the renderer-agnostic view-model shared by the aggregate
// view and every per-document view.
package view

// Title labels of the two view kinds.
const (
	AggregateTitle      = "All Documents"
	documentTitlePrefix = "Document: "
)

// DocumentTitle returns the title label for a single-document view.
func DocumentTitle(docID string) string { return documentTitlePrefix + docID }

// ViewModel is a snapshot of what every report section should display.
// NonMatchTotal counts every non-match, including rows the table does not list.
type ViewModel struct {
	ExecutiveSummary ExecutiveSummary  `json:"executiveSummary"`
	FieldAnalysis    FieldAnalysis     `json:"fieldAnalysis"`
	ConfusionMatrix  map[string]CMCell `json:"confusionMatrix"`
	NonMatches       []NonMatch        `json:"nonMatches"`
	NonMatchTotal    int               `json:"nonMatchTotal"`
	DocumentFiles    map[string]string `json:"documentFiles"`
}

// ExecutiveSummary is the gauge plus the metric cards keyed by label.
// GaugeValue is nil when there is nothing to gauge.
type ExecutiveSummary struct {
	GaugeValue *float64               `json:"gaugeValue"`
	Metrics    map[string]MetricValue `json:"metrics"`
}

// FieldAnalysis is the per-field bar chart and table.
type FieldAnalysis struct {
	Chart []ChartBar `json:"chart"`
	Table []FieldRow `json:"table"`
}

// ChartBar is one field bar. Width is a percentage in [0,100].
type ChartBar struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
	Width int     `json:"width"`
	Color Tier    `json:"color"`
}

// FieldRow is one row of the field performance table.
type FieldRow struct {
	Field     string  `json:"field"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	TP        int     `json:"tp"`
	FD        int     `json:"fd"`
	FA        int     `json:"fa"`
	FN        int     `json:"fn"`
}

// CMCell is one confusion-matrix cell.
type CMCell struct {
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// NonMatch is a non-match stamped with its owning document.
type NonMatch struct {
	DocID       string `json:"doc_id"`
	FieldPath   string `json:"field_path"`
	Type        string `json:"non_match_type"`
	GroundTruth string `json:"ground_truth_value"`
	Prediction  string `json:"prediction_value"`
}

// CMLabels are the confusion-matrix cell labels in display order.
var CMLabels = []string{"TP", "TN", "FD", "FA", "FN"}

// New returns an empty view-model with every map allocated.
func New() ViewModel {
	return ViewModel{
		ExecutiveSummary: ExecutiveSummary{Metrics: map[string]MetricValue{}},
		ConfusionMatrix:  map[string]CMCell{},
		DocumentFiles:    map[string]string{},
	}
}

// Clone returns a deep copy.
func (vm ViewModel) Clone() ViewModel {
	c := ViewModel{
		ExecutiveSummary: ExecutiveSummary{Metrics: cloneMap(vm.ExecutiveSummary.Metrics)},
		FieldAnalysis: FieldAnalysis{
			Chart: cloneSlice(vm.FieldAnalysis.Chart),
			Table: cloneSlice(vm.FieldAnalysis.Table),
		},
		ConfusionMatrix: cloneMap(vm.ConfusionMatrix),
		NonMatches:      cloneSlice(vm.NonMatches),
		NonMatchTotal:   vm.NonMatchTotal,
		DocumentFiles:   cloneMap(vm.DocumentFiles),
	}
	if g := vm.ExecutiveSummary.GaugeValue; g != nil {
		v := *g
		c.ExecutiveSummary.GaugeValue = &v
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}
