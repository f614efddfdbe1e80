package features

import (
	"context"
	"fmt"
	"runtime"

	"github.com/crux82/ganbert/data/dataset"

	"github.com/RoaringBitmap/roaring"
	"github.com/sourcegraph/conc/pool"
)

// Batch is one fixed-size group of feature vectors. Real holds the row
// indexes that come from real examples.
type Batch struct {
	Features []dataset.FeatureVector
	Real     *roaring.Bitmap
}

// NumReal is the number of non-padding rows.
func (b Batch) NumReal() int { return int(b.Real.GetCardinality()) }

// PadToBatch wraps examples and appends Padding until the length is a
// multiple of batchSize. An empty input stays empty.
func PadToBatch(examples []dataset.LabeledExample, batchSize int) []dataset.Example {
	out := dataset.Real(examples)
	if batchSize <= 1 {
		return out
	}
	for len(out)%batchSize != 0 {
		out = append(out, dataset.Padding{})
	}
	return out
}

// BuildBatches pads examples to a whole number of batches and converts the
// batches concurrently. Output order matches input order; any conversion
// error fails the whole call.
func BuildBatches(ctx context.Context, conv *Converter, examples []dataset.LabeledExample, batchSize int) ([]Batch, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	padded := PadToBatch(examples, batchSize)
	batches := make([]Batch, len(padded)/batchSize)

	workers := pool.New().
		WithMaxGoroutines(runtime.GOMAXPROCS(0)).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for i := range batches {
		i := i
		chunk := padded[i*batchSize : (i+1)*batchSize]
		workers.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b := Batch{
				Features: make([]dataset.FeatureVector, len(chunk)),
				Real:     roaring.New(),
			}
			for row, ex := range chunk {
				fv, err := conv.Convert(ex)
				if err != nil {
					return fmt.Errorf("batch %d row %d: %w", i, row, err)
				}
				b.Features[row] = fv
				if fv.IsRealExample {
					b.Real.Add(uint32(row))
				}
			}
			batches[i] = b
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}
