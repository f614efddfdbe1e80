package features

import (
	"fmt"

	"github.com/crux82/ganbert/data/dataset"
	"github.com/crux82/ganbert/data/tokenizer"
)

// Converter turns Examples into fixed-length FeatureVectors for one task.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	tok            tokenizer.Tokenizer
	vocab          *dataset.LabelVocabulary
	tokenLabelMask bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithTokenLabelMask makes every vector carry a per-token LabelMask: the
// attention mask for labeled examples, all zeros otherwise.
func WithTokenLabelMask(enabled bool) Option {
	return func(c *Converter) {
		c.tokenLabelMask = enabled
	}
}

func NewConverter(tok tokenizer.Tokenizer, vocab *dataset.LabelVocabulary, opts ...Option) *Converter {
	c := &Converter{tok: tok, vocab: vocab}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SeqLen is the fixed length of every vector this converter produces.
func (c *Converter) SeqLen() int { return c.tok.MaxSeqLen() }

// Convert builds the feature vector of ex. Padding yields an all-zero vector
// with IsRealExample false; a nil Example is an error.
func (c *Converter) Convert(ex dataset.Example) (dataset.FeatureVector, error) {
	var (
		fv  dataset.FeatureVector
		err error
	)
	switch e := ex.(type) {
	case dataset.RealExample:
		fv, err = c.convertReal(e.LabeledExample)
	case dataset.Padding:
		fv = c.padding()
	default:
		return dataset.FeatureVector{}, fmt.Errorf("%w: %T", dataset.ErrInvalidExample, ex)
	}
	if err != nil {
		return dataset.FeatureVector{}, err
	}
	if err := fv.Validate(c.SeqLen()); err != nil {
		return dataset.FeatureVector{}, err
	}
	return fv, nil
}

func (c *Converter) convertReal(e dataset.LabeledExample) (dataset.FeatureVector, error) {
	segments := []string{e.TextA()}
	if b, ok := e.TextB(); ok {
		segments = append(segments, b)
	}
	enc, err := c.tok.Encode(segments...)
	if err != nil {
		return dataset.FeatureVector{}, fmt.Errorf("tokenize %q: %w", e.ID(), err)
	}

	fv := dataset.FeatureVector{
		TokenIDs:      enc.IDs,
		AttentionMask: enc.AttentionMask,
		SegmentIDs:    enc.SegmentIDs,
		LabelID:       dataset.NoLabelID,
		IsRealExample: true,
	}
	label, labeled := e.Label()
	if labeled {
		id, err := c.vocab.Index(label)
		if err != nil {
			return dataset.FeatureVector{}, fmt.Errorf("example %q: %w", e.ID(), err)
		}
		fv.LabelID = id
	}
	if c.tokenLabelMask {
		fv.LabelMask = make([]int64, len(enc.AttentionMask))
		if labeled {
			copy(fv.LabelMask, enc.AttentionMask)
		}
	}
	return fv, nil
}

func (c *Converter) padding() dataset.FeatureVector {
	n := c.SeqLen()
	fv := dataset.FeatureVector{
		TokenIDs:      make([]int64, n),
		AttentionMask: make([]int64, n),
		SegmentIDs:    make([]int64, n),
		LabelID:       dataset.NoLabelID,
		IsRealExample: false,
	}
	if c.tokenLabelMask {
		fv.LabelMask = make([]int64, n)
	}
	return fv
}
