package view

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		v    float64
		want Tier
	}{
		{1.0, TierGood},
		{0.8, TierGood},
		{0.7999, TierWarning},
		{0.6, TierWarning},
		{0.5999, TierBad},
		{0, TierBad},
	}
	for _, tt := range tests {
		if got := TierFor(tt.v); got != tt.want {
			t.Errorf("TierFor(%v)=%q want %q", tt.v, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		x, total, want int
	}{
		{8, 10, 80},
		{1, 10, 10},
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{5, 0, 0},
		{0, 0, 0},
		{25, 10, 100},
	}
	for _, tt := range tests {
		if got := Percentage(tt.x, tt.total); got != tt.want {
			t.Errorf("Percentage(%d,%d)=%d want %d", tt.x, tt.total, got, tt.want)
		}
	}
}

func TestPercentage_AlwaysInRange(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for x := 0; x <= 40; x++ {
			p := Percentage(x, total)
			if p < 0 || p > 100 {
				t.Fatalf("Percentage(%d,%d)=%d out of range", x, total, p)
			}
		}
	}
}

func TestPercentage_ZeroTotal(t *testing.T) {
	for _, x := range []int{0, 1, 7} {
		if got := Percentage(x, 0); got != 0 {
			t.Errorf("Percentage(%d,0)=%d want 0", x, got)
		}
	}
}

func TestMetricLabel(t *testing.T) {
	tests := map[string]string{
		"cm_f1":            "F1",
		"cm_precision":     "Precision",
		"recall":           "Recall",
		"cm_accuracy":      "Accuracy",
		"similarity_score": "Similarity Score",
	}
	for key, want := range tests {
		if got := MetricLabel(key); got != want {
			t.Errorf("MetricLabel(%q)=%q want %q", key, got, want)
		}
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want MetricValue
	}{
		{"12", Count(12)},
		{" 0.857 ", Number(0.857)},
		{"N/A", Text("N/A")},
		{"", Text("")},
		{"NaN", Text("NaN")},
	}
	for _, tt := range tests {
		if got := ParseMetric(tt.in); got != tt.want {
			t.Errorf("ParseMetric(%q)=%+v want %+v", tt.in, got, tt.want)
		}
	}
}

func TestMetricValue_DisplayRoundTrip(t *testing.T) {
	for _, s := range []string{"12", "0.857", "1.000", "N/A"} {
		if got := ParseMetric(s).Display(); got != s {
			t.Errorf("round trip of %q gave %q", s, got)
		}
	}
}

func TestMetricValue_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]MetricValue{"F1": Number(0.5), "Note": Text("n/a")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"F1":0.5,"Note":"n/a"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestClone_IsDeep(t *testing.T) {
	g := 0.9
	vm := New()
	vm.ExecutiveSummary.GaugeValue = &g
	vm.ExecutiveSummary.Metrics["F1"] = Number(0.9)
	vm.FieldAnalysis.Chart = []ChartBar{{Field: "a", Value: 0.9, Width: 90, Color: TierGood}}
	vm.ConfusionMatrix["TP"] = CMCell{Value: 3, Percentage: 100}
	vm.NonMatches = []NonMatch{{DocID: "d1", FieldPath: "x"}}
	vm.DocumentFiles["d1"] = "files/d1.pdf"

	c := vm.Clone()
	if !reflect.DeepEqual(vm, c) {
		t.Fatal("clone differs from original")
	}

	*c.ExecutiveSummary.GaugeValue = 0.1
	c.ExecutiveSummary.Metrics["F1"] = Number(0.1)
	c.FieldAnalysis.Chart[0].Value = 0.1
	c.ConfusionMatrix["TP"] = CMCell{}
	c.NonMatches[0].DocID = "d2"
	c.DocumentFiles["d1"] = "other"

	if *vm.ExecutiveSummary.GaugeValue != 0.9 || vm.ExecutiveSummary.Metrics["F1"] != Number(0.9) ||
		vm.FieldAnalysis.Chart[0].Value != 0.9 || vm.ConfusionMatrix["TP"].Value != 3 ||
		vm.NonMatches[0].DocID != "d1" || vm.DocumentFiles["d1"] != "files/d1.pdf" {
		t.Error("mutating the clone changed the original")
	}
}

func TestDocumentTitle(t *testing.T) {
	if got := DocumentTitle("inv-1"); got != "Document: inv-1" {
		t.Errorf("unexpected title %q", got)
	}
}
