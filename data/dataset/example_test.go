package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabeledExampleOptionalParts(t *testing.T) {
	e := NewLabeledExample("train-1", "How do you do it ?")

	assert.Equal(t, "train-1", e.ID())
	assert.Equal(t, "How do you do it ?", e.TextA())
	_, hasB := e.TextB()
	assert.False(t, hasB)
	_, hasLabel := e.Label()
	assert.False(t, hasLabel)

	e = NewLabeledExample("train-2", "a", WithTextB("b"), WithLabel("DESC_manner"))
	b, hasB := e.TextB()
	require.True(t, hasB)
	assert.Equal(t, "b", b)
	label, hasLabel := e.Label()
	require.True(t, hasLabel)
	assert.Equal(t, "DESC_manner", label)
}

func TestLabeledExampleEmptyLabelIsPresent(t *testing.T) {
	e := NewLabeledExample("x", "text", WithLabel(""))
	_, ok := e.Label()
	assert.True(t, ok)
}

func TestLabeledExampleKey(t *testing.T) {
	a := NewLabeledExample("train-DESC:manner How do you do it ?", "How do you do it ?")
	b := NewLabeledExample("train-DESC:manner How do you do it ?", "different text")
	c := NewLabeledExample("test-DESC:manner How do you do it ?", "How do you do it ?")

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestExampleVariants(t *testing.T) {
	examples := Real([]LabeledExample{
		NewLabeledExample("1", "a"),
		NewLabeledExample("2", "b"),
	})
	examples = append(examples, Padding{})

	var real, padding int
	for _, ex := range examples {
		switch ex.(type) {
		case RealExample:
			real++
		case Padding:
			padding++
		}
	}
	assert.Equal(t, 2, real)
	assert.Equal(t, 1, padding)
	assert.Equal(t, "2", examples[1].(RealExample).ID())

	var none Example
	_, isPadding := none.(Padding)
	assert.False(t, isPadding)
}

func TestFeatureVectorValidate(t *testing.T) {
	fv := FeatureVector{
		TokenIDs:      make([]int64, 4),
		AttentionMask: make([]int64, 4),
		SegmentIDs:    make([]int64, 4),
	}
	assert.NoError(t, fv.Validate(4))
	assert.ErrorIs(t, fv.Validate(5), ErrShape)

	fv.LabelMask = make([]int64, 3)
	assert.ErrorIs(t, fv.Validate(4), ErrShape)

	fv.LabelMask = nil
	fv.SegmentIDs = fv.SegmentIDs[:2]
	assert.ErrorIs(t, fv.Validate(4), ErrShape)
}
