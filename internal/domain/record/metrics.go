package record

// Counts are confusion-matrix outcome counts: true positive, true negative,
// false detection, false alarm, false negative.
type Counts struct {
	TP int
	TN int
	FD int
	FA int
	FN int
}

// Total is tp+fd+fa+fn. True negatives are not part of the denominator.
func (c Counts) Total() int {
	return c.TP + c.FD + c.FA + c.FN
}

// Derived holds metrics computed upstream from the counts.
type Derived struct {
	Precision float64
	Recall    float64
	F1        float64
	Accuracy  float64
}

// Metrics are the counts plus their derived scores.
type Metrics struct {
	Counts
	Derived Derived
}

// Field is one field's metrics.
type Field struct {
	Name    string
	Metrics Metrics
}

// NonMatch is a single ground-truth/prediction disagreement.
type NonMatch struct {
	FieldPath   string
	Type        string
	GroundTruth string
	Prediction  string
}
