// Package projector reshapes one document's evaluation record into the view-model
// shape captured from the aggregate report.
package projector

import (
	"github.com/kailas-cloud/evalview/internal/domain/record"
	"github.com/kailas-cloud/evalview/internal/domain/view"
)

// Project builds the view-model of a single document. It only selects and reshapes
// upstream metrics; nothing is re-derived. files is the aggregate document file map;
// only the entry of rec's document is kept.
func Project(rec record.Record, files map[string]string) view.ViewModel {
	vm := view.New()
	overall := rec.Overall()

	gauge := overall.Derived.F1
	vm.ExecutiveSummary.GaugeValue = &gauge
	vm.ExecutiveSummary.Metrics[view.LabelDocuments] = view.Count(1)
	vm.ExecutiveSummary.Metrics[view.LabelPrecision] = view.Number(overall.Derived.Precision)
	vm.ExecutiveSummary.Metrics[view.LabelRecall] = view.Number(overall.Derived.Recall)
	vm.ExecutiveSummary.Metrics[view.LabelF1] = view.Number(overall.Derived.F1)
	vm.ExecutiveSummary.Metrics[view.LabelAccuracy] = view.Number(overall.Derived.Accuracy)

	vm.FieldAnalysis = fieldAnalysis(rec.Fields())
	vm.ConfusionMatrix = confusionMatrix(overall.Counts)

	docID := rec.DocID()
	for _, nm := range rec.NonMatches() {
		vm.NonMatches = append(vm.NonMatches, view.NonMatch{
			DocID:       docID,
			FieldPath:   nm.FieldPath,
			Type:        nm.Type,
			GroundTruth: nm.GroundTruth,
			Prediction:  nm.Prediction,
		})
	}
	vm.NonMatchTotal = len(vm.NonMatches)

	if path, ok := files[docID]; ok {
		vm.DocumentFiles[docID] = path
	}
	return vm
}

func fieldAnalysis(fields []record.Field) view.FieldAnalysis {
	var fa view.FieldAnalysis
	for _, f := range fields {
		d := f.Metrics.Derived
		fa.Chart = append(fa.Chart, view.ChartBar{
			Field: f.Name,
			Value: d.F1,
			Width: view.ScorePercent(d.F1),
			Color: view.TierFor(d.F1),
		})
		fa.Table = append(fa.Table, view.FieldRow{
			Field:     f.Name,
			Precision: d.Precision,
			Recall:    d.Recall,
			F1:        d.F1,
			TP:        f.Metrics.TP,
			FD:        f.Metrics.FD,
			FA:        f.Metrics.FA,
			FN:        f.Metrics.FN,
		})
	}
	return fa
}

// confusionMatrix uses tp+fd+fa+fn as the denominator; true negatives are excluded.
func confusionMatrix(c record.Counts) map[string]view.CMCell {
	total := c.Total()
	cell := func(v int) view.CMCell {
		return view.CMCell{Value: v, Percentage: float64(view.Percentage(v, total))}
	}
	return map[string]view.CMCell{
		"TP": cell(c.TP),
		"TN": cell(c.TN),
		"FD": cell(c.FD),
		"FA": cell(c.FA),
		"FN": cell(c.FN),
	}
}
