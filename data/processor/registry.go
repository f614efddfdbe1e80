package processor

import (
	"fmt"
	"strings"

	"github.com/crux82/ganbert/data/dataset"
	"github.com/crux82/ganbert/data/tokenizer"
)

// Task names a dataset layout together with its label vocabulary.
type Task string

const (
	TaskQCFine   Task = "qc-fine"
	TaskQCCoarse Task = "qc-coarse"
)

// Tasks lists every task New accepts.
func Tasks() []Task {
	return []Task{TaskQCFine, TaskQCCoarse}
}

// New returns the processor registered for task. Names are matched case
// insensitively; there is no fallback processor.
func New(task Task, norm tokenizer.Normalizer, opts ...Option) (Processor, error) {
	switch Task(strings.ToLower(strings.TrimSpace(string(task)))) {
	case TaskQCFine:
		return NewQCFine(norm, opts...), nil
	case TaskQCCoarse:
		return NewQCCoarse(norm, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", dataset.ErrUnknownTask, task)
	}
}
