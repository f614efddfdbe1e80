// Package pipeline wires configuration, the task's processor, the tokenizer
// and feature conversion into the data a training run consumes.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	internal "github.com/crux82/ganbert/data"
	"github.com/crux82/ganbert/data/config"
	"github.com/crux82/ganbert/data/dataset"
	"github.com/crux82/ganbert/data/features"
	"github.com/crux82/ganbert/data/processor"
	"github.com/crux82/ganbert/data/tokenizer"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Prepared holds everything read and converted for one task.
type Prepared struct {
	Task         processor.Task
	Labels       *dataset.LabelVocabulary
	Splits       map[processor.Split][]dataset.LabeledExample
	Batches      map[processor.Split][]features.Batch
	ClassWeights []float64
	// CoarseCounts is the labeled split's distribution per coarse class.
	CoarseCounts map[string]float64
	// Duplicates counts repeated records per split. Repeats are kept.
	Duplicates map[processor.Split]int
}

type options struct {
	logger    zerolog.Logger
	tokenizer tokenizer.Tokenizer
}

// Option customizes Prepare.
type Option func(*options)

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTokenizer skips building a tokenizer from config.
func WithTokenizer(tok tokenizer.Tokenizer) Option {
	return func(o *options) { o.tokenizer = tok }
}

// Prepare reads the labeled, unlabeled and test splits of cfg.Data.Task and
// converts each into padded batches. The unlabeled split is optional.
func Prepare(ctx context.Context, cfg *config.Config, opts ...Option) (*Prepared, error) {
	o := options{logger: internal.GetLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := o.logger.With().Str("task", cfg.Data.Task).Str("dataDir", cfg.Data.Dir).Logger()

	proc, err := processor.New(processor.Task(cfg.Data.Task), tokenizer.NewUnicodeNormalizer(), processor.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	tok := o.tokenizer
	if tok == nil {
		tok, err = tokenizer.New(tokenizer.Config{
			Name:      cfg.Features.Tokenizer,
			VocabPath: cfg.Features.VocabPath,
			MaxSeqLen: cfg.Features.MaxSeqLength,
			LowerCase: cfg.Features.LowerCase,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build tokenizer: %w", err)
		}
	}
	if tok.MaxSeqLen() != cfg.Features.MaxSeqLength {
		return nil, fmt.Errorf("%w: tokenizer length %d, configured %d", dataset.ErrShape, tok.MaxSeqLen(), cfg.Features.MaxSeqLength)
	}

	splits, err := processor.ReadSplits(ctx, proc, cfg.Data.Dir, processor.SplitLabeled, processor.SplitTest)
	if err != nil {
		return nil, err
	}
	unlabeled, err := proc.ReadUnlabeled(cfg.Data.Dir)
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		logger.Warn().Err(err).Msg("no unlabeled split, continuing with labeled data only")
	case err != nil:
		return nil, err
	default:
		splits[processor.SplitUnlabeled] = unlabeled
	}

	duplicates := make(map[processor.Split]int, len(splits))
	for split, examples := range splits {
		if n := countDuplicates(logger.With().Str("split", string(split)).Logger(), examples); n > 0 {
			duplicates[split] = n
		}
	}

	counts, err := dataset.LabelCounts(splits[processor.SplitLabeled], proc.Labels())
	if err != nil {
		return nil, err
	}
	coarse, err := dataset.CoarseCounts(counts, proc.Labels())
	if err != nil {
		return nil, err
	}
	weights, err := dataset.ClassWeights(splits[processor.SplitLabeled], proc.Labels())
	if err != nil {
		return nil, err
	}

	conv := features.NewConverter(tok, proc.Labels(), features.WithTokenLabelMask(cfg.Features.TokenLabelMask))
	batches := make(map[processor.Split][]features.Batch, len(splits))
	for split, examples := range splits {
		b, err := features.BuildBatches(ctx, conv, examples, cfg.Features.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("%s split: %w", split, err)
		}
		batches[split] = b
		logger.Info().
			Str("split", string(split)).
			Int("examples", len(examples)).
			Int("batches", len(b)).
			Msg("prepared split")
	}

	coarseLog := zerolog.Dict()
	for class, n := range coarse {
		coarseLog.Float64(class, n)
	}
	logger.Debug().
		Str("vocabulary", proc.Labels().Version()).
		Dict("coarse", coarseLog).
		Floats64("classWeights", weights).
		Msg("label distribution")

	return &Prepared{
		Task:         processor.Task(cfg.Data.Task),
		Labels:       proc.Labels(),
		Splits:       splits,
		Batches:      batches,
		ClassWeights: weights,
		CoarseCounts: coarse,
		Duplicates:   duplicates,
	}, nil
}

// countDuplicates returns how many examples repeat an earlier one's key.
func countDuplicates(logger zerolog.Logger, examples []dataset.LabeledExample) int {
	seen := make(map[uuid.UUID]struct{}, len(examples))
	n := 0
	for _, e := range examples {
		key := e.Key()
		if _, ok := seen[key]; ok {
			n++
			logger.Warn().Str("key", key.String()).Str("id", e.ID()).Msg("duplicate record")
			continue
		}
		seen[key] = struct{}{}
	}
	return n
}
