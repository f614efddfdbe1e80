package processor

import (
	"context"
	"fmt"

	"github.com/crux82/ganbert/data/dataset"

	"github.com/sourcegraph/conc/pool"
)

// Split identifies one partition of a dataset.
type Split string

const (
	SplitLabeled   Split = "labeled"
	SplitUnlabeled Split = "unlabeled"
	SplitTest      Split = "test"
)

// Read dispatches to the Processor method for split.
func Read(p Processor, split Split, dataDir string) ([]dataset.LabeledExample, error) {
	switch split {
	case SplitLabeled:
		return p.ReadLabeled(dataDir)
	case SplitUnlabeled:
		return p.ReadUnlabeled(dataDir)
	case SplitTest:
		return p.ReadTest(dataDir)
	default:
		return nil, fmt.Errorf("unknown split %q", split)
	}
}

// ReadSplits reads the given splits concurrently. Reads share no state; the
// first failure cancels the reads not yet started and nothing is returned.
func ReadSplits(ctx context.Context, p Processor, dataDir string, splits ...Split) (map[Split][]dataset.LabeledExample, error) {
	out := make(map[Split][]dataset.LabeledExample, len(splits))
	if len(splits) == 0 {
		return out, nil
	}

	results := make([][]dataset.LabeledExample, len(splits))
	workers := pool.New().
		WithMaxGoroutines(len(splits)).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for i, split := range splits {
		i, split := i, split
		workers.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			examples, err := Read(p, split, dataDir)
			if err != nil {
				return fmt.Errorf("%s split: %w", split, err)
			}
			results[i] = examples
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}

	for i, split := range splits {
		out[split] = results[i]
	}
	return out, nil
}
