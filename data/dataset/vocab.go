package dataset

import (
	"fmt"
	"sort"

	"github.com/armon/go-radix"
)

// LabelVocabulary is the ordered, closed set of labels of a task. Position in
// the list is the label id, so the order must never change for a given
// version.
type LabelVocabulary struct {
	version string
	labels  []string
	index   *radix.Tree // label -> id
}

// NewLabelVocabulary builds a vocabulary from labels in id order.
func NewLabelVocabulary(version string, labels ...string) (*LabelVocabulary, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: %s has no labels", ErrInvalidVocabulary, version)
	}
	tree := radix.New()
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: %s has an empty label at %d", ErrInvalidVocabulary, version, i)
		}
		if _, updated := tree.Insert(l, i); updated {
			return nil, fmt.Errorf("%w: %s has duplicate label %q", ErrInvalidVocabulary, version, l)
		}
	}
	return &LabelVocabulary{
		version: version,
		labels:  append([]string(nil), labels...),
		index:   tree,
	}, nil
}

// MustLabelVocabulary is NewLabelVocabulary for package level literals.
func MustLabelVocabulary(version string, labels ...string) *LabelVocabulary {
	v, err := NewLabelVocabulary(version, labels...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *LabelVocabulary) Version() string { return v.version }
func (v *LabelVocabulary) Len() int        { return len(v.labels) }

// Labels returns a copy of the labels in id order.
func (v *LabelVocabulary) Labels() []string {
	return append([]string(nil), v.labels...)
}

// Index maps a label to its id.
func (v *LabelVocabulary) Index(label string) (int, error) {
	id, ok := v.index.Get(label)
	if !ok {
		return 0, fmt.Errorf("%w: %q (vocabulary %s)", ErrUnknownLabel, label, v.version)
	}
	return id.(int), nil
}

// Label maps an id back to its label.
func (v *LabelVocabulary) Label(id int) (string, bool) {
	if id < 0 || id >= len(v.labels) {
		return "", false
	}
	return v.labels[id], true
}

func (v *LabelVocabulary) Contains(label string) bool {
	_, ok := v.index.Get(label)
	return ok
}

// WithPrefix returns every label starting with prefix, in id order.
// WithPrefix("DESC_") lists the fine classes of the DESC coarse class.
func (v *LabelVocabulary) WithPrefix(prefix string) []string {
	var ids []int
	v.index.WalkPrefix(prefix, func(_ string, id interface{}) bool {
		ids = append(ids, id.(int))
		return false
	})
	sort.Ints(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = v.labels[id]
	}
	return out
}
