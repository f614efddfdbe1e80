package dataset

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// LabelCounts counts labeled examples per label id. Examples without a label
// are skipped; a label outside vocab fails the whole count.
func LabelCounts(examples []LabeledExample, vocab *LabelVocabulary) ([]float64, error) {
	counts := make([]float64, vocab.Len())
	for _, e := range examples {
		label, ok := e.Label()
		if !ok {
			continue
		}
		id, err := vocab.Index(label)
		if err != nil {
			return nil, err
		}
		counts[id]++
	}
	return counts, nil
}

// ClassWeights returns inverse frequency weights scaled so that the classes
// present in examples average to 1. Absent classes get weight 0.
func ClassWeights(examples []LabeledExample, vocab *LabelVocabulary) ([]float64, error) {
	counts, err := LabelCounts(examples, vocab)
	if err != nil {
		return nil, err
	}
	weights := make([]float64, len(counts))
	present := 0
	for i, c := range counts {
		if c > 0 {
			weights[i] = 1 / c
			present++
		}
	}
	if present == 0 {
		return weights, nil
	}
	floats.Scale(float64(present)/floats.Sum(weights), weights)
	return weights, nil
}

// CoarseCounts rolls per-label counts up to coarse classes. The coarse class of
// a label is its text before the first "_", or the whole label when it has
// none. Classes with no examples are left out.
func CoarseCounts(counts []float64, vocab *LabelVocabulary) (map[string]float64, error) {
	if len(counts) != vocab.Len() {
		return nil, fmt.Errorf("%w: %d counts for %d labels", ErrShape, len(counts), vocab.Len())
	}
	out := make(map[string]float64)
	seen := make(map[string]bool)
	for _, label := range vocab.Labels() {
		coarse, _, found := strings.Cut(label, "_")
		if seen[coarse] {
			continue
		}
		seen[coarse] = true

		members := vocab.WithPrefix(coarse + "_")
		if !found {
			members = append(members, label)
		}
		total := 0.0
		for _, m := range members {
			id, err := vocab.Index(m)
			if err != nil {
				return nil, err
			}
			total += counts[id]
		}
		if total > 0 {
			out[coarse] = total
		}
	}
	return out, nil
}
