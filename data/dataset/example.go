package dataset

import "github.com/google/uuid"

// exampleNamespace seeds Key so the same id always maps to the same UUID.
var exampleNamespace = uuid.MustParse("6f0c5f0e-8f4b-4c55-9a53-3d2b7c1e9a10")

// LabeledExample is a single example for sequence classification. It is
// immutable once built; text_b and label are present only when the split
// that produced it carries them.
type LabeledExample struct {
	id       string
	textA    string
	textB    string
	hasTextB bool
	label    string
	hasLabel bool
}

// ExampleOption sets one of the optional parts of a LabeledExample.
type ExampleOption func(*LabeledExample)

// WithTextB sets the second segment for sequence pair tasks.
func WithTextB(text string) ExampleOption {
	return func(e *LabeledExample) {
		e.textB = text
		e.hasTextB = true
	}
}

// WithLabel sets the label. Test examples are built without it.
func WithLabel(label string) ExampleOption {
	return func(e *LabeledExample) {
		e.label = label
		e.hasLabel = true
	}
}

func NewLabeledExample(id, textA string, opts ...ExampleOption) LabeledExample {
	e := LabeledExample{id: id, textA: textA}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e LabeledExample) ID() string    { return e.id }
func (e LabeledExample) TextA() string { return e.textA }

func (e LabeledExample) TextB() (string, bool) { return e.textB, e.hasTextB }

func (e LabeledExample) Label() (string, bool) { return e.label, e.hasLabel }

// Key returns a fixed-size key derived from the id. The id itself embeds the
// whole source line and is only meant for diagnostics.
func (e LabeledExample) Key() uuid.UUID {
	return uuid.NewSHA1(exampleNamespace, []byte(e.id))
}

// Example is what the batching layer hands to feature conversion: either a
// RealExample or a Padding marker. A nil Example is neither and is rejected.
type Example interface {
	isExample()
}

// RealExample wraps an example read from a split.
type RealExample struct {
	LabeledExample
}

// Padding fills a batch up to its fixed size. It carries no data and always
// converts to a feature vector with IsRealExample false.
type Padding struct{}

func (RealExample) isExample() {}
func (Padding) isExample()     {}

// Real wraps examples in the RealExample variant, preserving order.
func Real(examples []LabeledExample) []Example {
	out := make([]Example, len(examples))
	for i, e := range examples {
		out[i] = RealExample{e}
	}
	return out
}
