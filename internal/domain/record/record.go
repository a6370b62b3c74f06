// Package record holds the upstream per-document evaluation record.
//
// A Record keeps the raw JSON it was loaded from and reads every nested value through
// a dotted-path accessor, so a record with missing sections still yields zero values
// instead of failing.
package record

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Dotted paths into the raw record.
const (
	PathDocID      = "doc_id"
	PathOverall    = "comparison_result.confusion_matrix.overall"
	PathFields     = "comparison_result.confusion_matrix.fields"
	PathNonMatches = "comparison_result.non_matches"
)

const nonMatchTypePrefix = "NonMatchType."

// Record is one document's evaluation result (immutable value object).
type Record struct {
	docID string
	raw   []byte
}

// New validates raw JSON and creates a Record. The document must carry a non-empty doc_id.
func New(raw []byte) (Record, error) {
	if !gjson.ValidBytes(raw) {
		return Record{}, fmt.Errorf("record is not valid JSON")
	}
	id := strings.TrimSpace(gjson.GetBytes(raw, PathDocID).String())
	if id == "" {
		return Record{}, fmt.Errorf("record has no %s", PathDocID)
	}
	c := make([]byte, len(raw))
	copy(c, raw)
	return Record{docID: id, raw: c}, nil
}

// DocID returns the document identifier.
func (r Record) DocID() string { return r.docID }

// Raw returns the JSON the record was built from. Callers must not modify it.
func (r Record) Raw() []byte { return r.raw }

// Int reads an integer at a dotted path, defaulting to 0.
func (r Record) Int(path string) int {
	return int(gjson.GetBytes(r.raw, path).Int())
}

// Float reads a number at a dotted path, defaulting to 0.
func (r Record) Float(path string) float64 {
	return gjson.GetBytes(r.raw, path).Float()
}

// Overall returns the document-level confusion-matrix metrics.
func (r Record) Overall() Metrics {
	return metricsFrom(gjson.GetBytes(r.raw, PathOverall))
}

// Fields returns per-field metrics in the order upstream emitted them.
func (r Record) Fields() []Field {
	var out []Field
	gjson.GetBytes(r.raw, PathFields).ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			out = append(out, Field{Name: key.String(), Metrics: metricsFrom(value)})
		}
		return true
	})
	return out
}

// NonMatches returns the document's non-matches. They carry no doc_id at rest.
func (r Record) NonMatches() []NonMatch {
	var out []NonMatch
	gjson.GetBytes(r.raw, PathNonMatches).ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		out = append(out, NonMatch{
			FieldPath:   textOr(value.Get("field_path"), "N/A"),
			Type:        strings.TrimPrefix(textOr(value.Get("non_match_type"), "N/A"), nonMatchTypePrefix),
			GroundTruth: textOr(value.Get("ground_truth_value"), "None"),
			Prediction:  textOr(value.Get("prediction_value"), "None"),
		})
		return true
	})
	return out
}

func metricsFrom(v gjson.Result) Metrics {
	return Metrics{
		Counts: Counts{
			TP: count(v, "tp"),
			TN: count(v, "tn"),
			FD: count(v, "fd"),
			FA: count(v, "fa"),
			FN: count(v, "fn"),
		},
		Derived: Derived{
			Precision: derived(v, "precision"),
			Recall:    derived(v, "recall"),
			F1:        derived(v, "f1"),
			Accuracy:  derived(v, "accuracy"),
		},
	}
}

func count(v gjson.Result, key string) int {
	n := v.Get(key).Int()
	if n < 0 {
		return 0
	}
	return int(n)
}

// derived prefers derived.<key> and falls back to the cm_-prefixed spelling.
func derived(v gjson.Result, key string) float64 {
	d := v.Get("derived")
	if x := d.Get(key); x.Exists() {
		return x.Float()
	}
	return d.Get("cm_" + key).Float()
}

func textOr(v gjson.Result, fallback string) string {
	switch v.Type {
	case gjson.Null:
		return fallback
	case gjson.String:
		return v.Str
	case gjson.JSON:
		return v.Raw
	default:
		return v.String()
	}
}
