package projector

import (
	"testing"

	"github.com/kailas-cloud/evalview/internal/domain/record"
	"github.com/kailas-cloud/evalview/internal/domain/view"
)

func makeRecord(t *testing.T, raw string) record.Record {
	t.Helper()
	r, err := record.New([]byte(raw))
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	return r
}

const scenarioRecord = `{
  "doc_id": "doc-1",
  "comparison_result": {
    "confusion_matrix": {
      "overall": {"tp": 8, "tn": 0, "fd": 1, "fa": 0, "fn": 1,
                  "derived": {"precision": 0.889, "recall": 0.889, "f1": 0.889, "accuracy": 0.8}},
      "fields": {
        "vendor": {"tp": 1, "derived": {"precision": 1, "recall": 1, "f1": 1}},
        "total":  {"tp": 0, "fd": 1, "fn": 1, "derived": {"precision": 0.5, "recall": 0.5, "f1": 0.6}}
      }
    },
    "non_matches": [
      {"field_path": "total", "non_match_type": "NonMatchType.FALSE_DISCOVERY",
       "ground_truth_value": "10.00", "prediction_value": "100.00"}
    ]
  }
}`

func TestProject_ConfusionMatrixScenario(t *testing.T) {
	vm := Project(makeRecord(t, scenarioRecord), nil)

	want := map[string]view.CMCell{
		"TP": {Value: 8, Percentage: 80},
		"FD": {Value: 1, Percentage: 10},
		"FA": {Value: 0, Percentage: 0},
		"FN": {Value: 1, Percentage: 10},
		"TN": {Value: 0, Percentage: 0},
	}
	for label, cell := range want {
		if got := vm.ConfusionMatrix[label]; got != cell {
			t.Errorf("%s: got %+v want %+v", label, got, cell)
		}
	}
}

func TestProject_TrueNegativesExcludedFromDenominator(t *testing.T) {
	rec := makeRecord(t, `{"doc_id": "d", "comparison_result": {"confusion_matrix": {"overall":
		{"tp": 2, "tn": 2, "fd": 0, "fa": 0, "fn": 2}}}}`)
	vm := Project(rec, nil)

	if vm.ConfusionMatrix["TP"].Percentage != 50 || vm.ConfusionMatrix["FN"].Percentage != 50 {
		t.Errorf("unexpected percentages: %+v", vm.ConfusionMatrix)
	}
	if vm.ConfusionMatrix["TN"].Percentage != 50 {
		t.Errorf("tn share is computed against tp+fd+fa+fn, got %v", vm.ConfusionMatrix["TN"].Percentage)
	}
	var sum float64
	for _, label := range view.CMLabels {
		sum += vm.ConfusionMatrix[label].Percentage
	}
	if sum != 150 {
		t.Errorf("expected shares to sum past 100 when tn > 0, got %v", sum)
	}
}

func TestProject_AllZeroCounts(t *testing.T) {
	vm := Project(makeRecord(t, `{"doc_id": "zero"}`), nil)
	for _, label := range view.CMLabels {
		if cell := vm.ConfusionMatrix[label]; cell.Value != 0 || cell.Percentage != 0 {
			t.Errorf("%s: expected zero cell, got %+v", label, cell)
		}
	}
	if vm.ExecutiveSummary.GaugeValue == nil || *vm.ExecutiveSummary.GaugeValue != 0 {
		t.Error("expected gauge 0 for missing derived metrics")
	}
}

func TestProject_ExecutiveSummary(t *testing.T) {
	vm := Project(makeRecord(t, scenarioRecord), nil)
	m := vm.ExecutiveSummary.Metrics

	if m[view.LabelDocuments] != view.Count(1) {
		t.Errorf("expected Documents=1, got %+v", m[view.LabelDocuments])
	}
	if m[view.LabelF1] != view.Number(0.889) || m[view.LabelAccuracy] != view.Number(0.8) {
		t.Errorf("derived metrics must be copied verbatim, got %+v", m)
	}
	if *vm.ExecutiveSummary.GaugeValue != 0.889 {
		t.Errorf("expected gauge 0.889, got %v", *vm.ExecutiveSummary.GaugeValue)
	}
}

func TestProject_FieldAnalysis(t *testing.T) {
	vm := Project(makeRecord(t, scenarioRecord), nil)
	fa := vm.FieldAnalysis

	if len(fa.Chart) != 2 || len(fa.Table) != 2 {
		t.Fatalf("expected 2 chart bars and 2 rows, got %d/%d", len(fa.Chart), len(fa.Table))
	}
	if fa.Chart[0] != (view.ChartBar{Field: "vendor", Value: 1, Width: 100, Color: view.TierGood}) {
		t.Errorf("unexpected vendor bar: %+v", fa.Chart[0])
	}
	if fa.Chart[1].Color != view.TierWarning || fa.Chart[1].Width != 60 {
		t.Errorf("0.6 must be a warning bar of width 60, got %+v", fa.Chart[1])
	}
	row := fa.Table[1]
	if row.Field != "total" || row.Precision != 0.5 || row.F1 != 0.6 || row.FD != 1 || row.FN != 1 {
		t.Errorf("unexpected total row: %+v", row)
	}
}

func TestProject_NonMatchesStampedWithDocID(t *testing.T) {
	vm := Project(makeRecord(t, scenarioRecord), nil)
	if len(vm.NonMatches) != 1 {
		t.Fatalf("expected 1 non-match, got %d", len(vm.NonMatches))
	}
	if vm.NonMatchTotal != 1 {
		t.Errorf("expected non-match total 1, got %d", vm.NonMatchTotal)
	}
	nm := vm.NonMatches[0]
	if nm.DocID != "doc-1" || nm.Type != "FALSE_DISCOVERY" || nm.Prediction != "100.00" {
		t.Errorf("unexpected non-match: %+v", nm)
	}
}

func TestProject_DocumentFilesRestricted(t *testing.T) {
	files := map[string]string{"doc-1": "files/doc-1.pdf", "doc-2": "files/doc-2.png"}
	vm := Project(makeRecord(t, scenarioRecord), files)

	if len(vm.DocumentFiles) != 1 || vm.DocumentFiles["doc-1"] != "files/doc-1.pdf" {
		t.Errorf("expected only doc-1's file, got %v", vm.DocumentFiles)
	}

	vm = Project(makeRecord(t, `{"doc_id": "doc-9"}`), files)
	if vm.DocumentFiles == nil || len(vm.DocumentFiles) != 0 {
		t.Errorf("expected empty file map, got %v", vm.DocumentFiles)
	}
}

func TestProject_DoesNotMutateInputs(t *testing.T) {
	files := map[string]string{"doc-1": "files/doc-1.pdf"}
	rec := makeRecord(t, scenarioRecord)
	before := string(rec.Raw())

	vm := Project(rec, files)
	vm.DocumentFiles["doc-1"] = "changed"

	if files["doc-1"] != "files/doc-1.pdf" {
		t.Error("projection must not share the input file map")
	}
	if string(rec.Raw()) != before {
		t.Error("projection must not modify the record")
	}
}
