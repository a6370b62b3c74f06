package htmlsurface

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/evalview/internal/domain/view"
)

func loadReport(t *testing.T, name string) *Surface {
	t.Helper()
	s, err := Load("testdata/"+name, zap.NewNop())
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return s
}

func TestCapture_ExecutiveSummary(t *testing.T) {
	vm := loadReport(t, "report.html").Capture()
	es := vm.ExecutiveSummary

	if es.GaugeValue == nil || *es.GaugeValue != 0.85 {
		t.Fatalf("expected gauge 0.85, got %v", es.GaugeValue)
	}
	want := map[string]view.MetricValue{
		"Documents": view.Count(2),
		"Precision": view.Number(0.85),
		"Recall":    view.Number(0.85),
		"F1":        view.Number(0.85),
		"Accuracy":  view.Number(0.739),
		"Latency":   view.Text("n/a"),
	}
	if !reflect.DeepEqual(es.Metrics, want) {
		t.Errorf("unexpected metrics:\n got: %v\nwant: %v", es.Metrics, want)
	}
}

func TestCapture_FieldAnalysis(t *testing.T) {
	fa := loadReport(t, "report.html").Capture().FieldAnalysis

	wantChart := []view.ChartBar{
		{Field: "vendor", Value: 0.9, Width: 90, Color: view.TierGood},
		{Field: "total", Value: 0.667, Width: 66, Color: view.TierWarning},
	}
	if !reflect.DeepEqual(fa.Chart, wantChart) {
		t.Errorf("unexpected chart: %+v", fa.Chart)
	}
	wantTable := []view.FieldRow{
		{Field: "vendor", Precision: 0.9, Recall: 0.9, F1: 0.9, TP: 9, FA: 1},
		{Field: "total", Precision: 0.667, Recall: 0.667, F1: 0.667, TP: 2, FD: 1},
	}
	if !reflect.DeepEqual(fa.Table, wantTable) {
		t.Errorf("unexpected table: %+v", fa.Table)
	}
}

func TestCapture_ConfusionMatrix(t *testing.T) {
	cm := loadReport(t, "report.html").Capture().ConfusionMatrix

	want := map[string]view.CMCell{
		"TP": {Value: 17, Percentage: 85},
		"TN": {Value: 3, Percentage: 15},
		"FD": {Value: 1, Percentage: 5},
		"FA": {Value: 1, Percentage: 5},
		"FN": {Value: 1, Percentage: 5},
	}
	if !reflect.DeepEqual(cm, want) {
		t.Errorf("unexpected matrix: %+v", cm)
	}
}

func TestCapture_NonMatchesAndGallery(t *testing.T) {
	vm := loadReport(t, "report.html").Capture()

	want := []view.NonMatch{
		{DocID: "inv-1", FieldPath: "total", Type: "FALSE_DISCOVERY", GroundTruth: "10.00", Prediction: "100.00"},
		{DocID: "inv-2", FieldPath: "vendor", Type: "FALSE_ALARM", GroundTruth: "None", Prediction: "ACME"},
	}
	if !reflect.DeepEqual(vm.NonMatches, want) {
		t.Errorf("unexpected non-matches: %+v", vm.NonMatches)
	}

	files := map[string]string{"inv-1": "images/inv-1.pdf", "inv-2": "images/inv-2.png"}
	if !reflect.DeepEqual(vm.DocumentFiles, files) {
		t.Errorf("unexpected files: %v", vm.DocumentFiles)
	}
}

func TestCapture_AbsentSections(t *testing.T) {
	vm := loadReport(t, "minimal.html").Capture()

	if vm.ExecutiveSummary.GaugeValue != nil || len(vm.ExecutiveSummary.Metrics) != 0 {
		t.Errorf("expected empty summary, got %+v", vm.ExecutiveSummary)
	}
	if vm.ExecutiveSummary.Metrics == nil || vm.ConfusionMatrix == nil || vm.DocumentFiles == nil {
		t.Error("absent sections must still yield allocated maps")
	}
	if len(vm.FieldAnalysis.Chart) != 0 || len(vm.ConfusionMatrix) != 0 || len(vm.NonMatches) != 0 {
		t.Errorf("expected empty sections, got %+v", vm)
	}
}

func TestCapture_SkipsUnreadableValues(t *testing.T) {
	s, err := Parse(strings.NewReader(`<html><body><main>
		<div class="section"><h2>Executive Summary</h2>
			<div class="performance-section"><span class="gauge-value">--</span></div>
			<div class="summary-grid"><div class="metric-card"><div class="metric-label">Orphan</div></div></div>
		</div>
		<div class="section"><h2>Confusion Matrix</h2><div class="cm-grid">
			<div class="cm-cell"><div class="cm-label">TP</div><div class="cm-value">many</div></div>
			<div class="cm-cell"><div class="cm-label">FN</div><div class="cm-value">4</div><div class="cm-percentage">?</div></div>
		</div></div>
	</main></body></html>`), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vm := s.Capture()
	if vm.ExecutiveSummary.GaugeValue != nil {
		t.Error("unreadable gauge must be omitted")
	}
	if len(vm.ExecutiveSummary.Metrics) != 0 {
		t.Errorf("card without value must be skipped, got %v", vm.ExecutiveSummary.Metrics)
	}
	if _, ok := vm.ConfusionMatrix["TP"]; ok {
		t.Error("non-numeric cell value must be skipped")
	}
	if vm.ConfusionMatrix["FN"] != (view.CMCell{Value: 4}) {
		t.Errorf("unexpected FN cell: %+v", vm.ConfusionMatrix["FN"])
	}
}
