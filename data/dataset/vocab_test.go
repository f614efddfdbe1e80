package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLabelVocabulary(t *testing.T) {
	v, err := NewLabelVocabulary("test/v1", "UNK_UNK", "DESC_def", "DESC_manner", "HUM_ind")
	require.NoError(t, err)

	assert.Equal(t, "test/v1", v.Version())
	assert.Equal(t, 4, v.Len())

	id, err := v.Index("DESC_manner")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	label, ok := v.Label(3)
	assert.True(t, ok)
	assert.Equal(t, "HUM_ind", label)

	_, ok = v.Label(4)
	assert.False(t, ok)
	_, ok = v.Label(-1)
	assert.False(t, ok)

	assert.True(t, v.Contains("UNK_UNK"))
	assert.False(t, v.Contains("DESC"))
}

func TestLabelVocabularyRejectsBadInput(t *testing.T) {
	_, err := NewLabelVocabulary("empty")
	assert.ErrorIs(t, err, ErrInvalidVocabulary)

	_, err = NewLabelVocabulary("dup", "A", "B", "A")
	assert.ErrorIs(t, err, ErrInvalidVocabulary)

	_, err = NewLabelVocabulary("blank", "A", "")
	assert.ErrorIs(t, err, ErrInvalidVocabulary)

	assert.Panics(t, func() { MustLabelVocabulary("dup", "A", "A") })
}

func TestLabelVocabularyUnknownLabel(t *testing.T) {
	v := MustLabelVocabulary("v1", "A", "B")
	_, err := v.Index("C")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestLabelVocabularyIsDeterministic(t *testing.T) {
	v := MustLabelVocabulary("v1", "b", "a", "c")

	first := v.Labels()
	second := v.Labels()
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"b", "a", "c"}, first)

	// callers cannot reorder the vocabulary through the returned slice
	first[0] = "z"
	assert.Equal(t, []string{"b", "a", "c"}, v.Labels())
}

func TestLabelVocabularyWithPrefix(t *testing.T) {
	v := MustLabelVocabulary("v1", "UNK_UNK", "DESC_reason", "ENTY_animal", "DESC_def", "DESC_manner")

	assert.Equal(t, []string{"DESC_reason", "DESC_def", "DESC_manner"}, v.WithPrefix("DESC_"))
	assert.Equal(t, []string{"ENTY_animal"}, v.WithPrefix("ENTY_"))
	assert.Empty(t, v.WithPrefix("LOC_"))
	assert.Len(t, v.WithPrefix(""), 5)
}
