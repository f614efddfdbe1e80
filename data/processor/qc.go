package processor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/crux82/ganbert/data/dataset"
	"github.com/crux82/ganbert/data/tokenizer"

	"github.com/rs/zerolog"
)

// Split files of the question classification layout.
const (
	LabeledFile   = "labeled.tsv"
	UnlabeledFile = "unlabeled.tsv"
	TestFile      = "test.tsv"
)

// Id prefixes; the unlabeled pool is part of the training set.
const (
	setTrain = "train"
	setTest  = "test"
)

// QCFineLabels is the question classification taxonomy as coarse_fine labels.
// UNK_UNK is the real class of the unlabeled pool.
var QCFineLabels = dataset.MustLabelVocabulary("qc-fine/v1",
	"UNK_UNK",
	"ABBR_abb", "ABBR_exp",
	"DESC_def", "DESC_desc", "DESC_manner", "DESC_reason",
	"ENTY_animal", "ENTY_body", "ENTY_color", "ENTY_cremat", "ENTY_currency", "ENTY_dismed",
	"ENTY_event", "ENTY_food", "ENTY_instru", "ENTY_lang", "ENTY_letter", "ENTY_other",
	"ENTY_plant", "ENTY_product", "ENTY_religion", "ENTY_sport", "ENTY_substance",
	"ENTY_symbol", "ENTY_techmeth", "ENTY_termeq", "ENTY_veh", "ENTY_word",
	"HUM_desc", "HUM_gr", "HUM_ind", "HUM_title",
	"LOC_city", "LOC_country", "LOC_mount", "LOC_other", "LOC_state",
	"NUM_code", "NUM_count", "NUM_date", "NUM_dist", "NUM_money", "NUM_ord", "NUM_other",
	"NUM_perc", "NUM_period", "NUM_speed", "NUM_temp", "NUM_volsize", "NUM_weight",
)

// QCCoarseLabels keeps only the coarse part, in the order it first appears
// in QCFineLabels.
var QCCoarseLabels = dataset.MustLabelVocabulary("qc-coarse/v1", coarseOf(QCFineLabels)...)

func coarseOf(fine *dataset.LabelVocabulary) []string {
	var out []string
	seen := make(map[string]bool)
	for _, label := range fine.Labels() {
		coarse, _, _ := strings.Cut(label, "_")
		if !seen[coarse] {
			seen[coarse] = true
			out = append(out, coarse)
		}
	}
	return out
}

// Option configures a processor.
type Option func(*QCProcessor)

// WithLogger sets the logger used for per-split diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *QCProcessor) {
		p.logger = logger
	}
}

// QCProcessor reads the question classification line format: a header line,
// then one "<coarse>:<fine> <text...>" record per line.
type QCProcessor struct {
	vocab  *dataset.LabelVocabulary
	coarse bool
	norm   tokenizer.Normalizer
	logger zerolog.Logger
}

// NewQCFine labels examples as coarse_fine.
func NewQCFine(norm tokenizer.Normalizer, opts ...Option) *QCProcessor {
	return newQC(QCFineLabels, false, norm, opts)
}

// NewQCCoarse labels examples with the coarse class only.
func NewQCCoarse(norm tokenizer.Normalizer, opts ...Option) *QCProcessor {
	return newQC(QCCoarseLabels, true, norm, opts)
}

func newQC(vocab *dataset.LabelVocabulary, coarse bool, norm tokenizer.Normalizer, opts []Option) *QCProcessor {
	if norm == nil {
		norm = tokenizer.NewUnicodeNormalizer()
	}
	p := &QCProcessor{vocab: vocab, coarse: coarse, norm: norm, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *QCProcessor) ReadLabeled(dataDir string) ([]dataset.LabeledExample, error) {
	return p.createExamples(filepath.Join(dataDir, LabeledFile), setTrain, true)
}

func (p *QCProcessor) ReadUnlabeled(dataDir string) ([]dataset.LabeledExample, error) {
	return p.createExamples(filepath.Join(dataDir, UnlabeledFile), setTrain, true)
}

func (p *QCProcessor) ReadTest(dataDir string) ([]dataset.LabeledExample, error) {
	return p.createExamples(filepath.Join(dataDir, TestFile), setTest, false)
}

func (p *QCProcessor) Labels() *dataset.LabelVocabulary { return p.vocab }

// Subclasses lists the fine labels under a coarse class, e.g. "LOC".
func (p *QCProcessor) Subclasses(coarse string) []string {
	return QCFineLabels.WithPrefix(coarse + "_")
}

func (p *QCProcessor) createExamples(path, setType string, withLabel bool) ([]dataset.LabeledExample, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []dataset.LabeledExample{}, nil
	}

	examples := make([]dataset.LabeledExample, 0, len(lines)-1)
	// the first line is a header
	for i, raw := range lines[1:] {
		lineNo := i + 2
		line := p.norm.NormalizeUnicode(raw)
		if line == "" {
			return nil, fmt.Errorf("%s:%d: %w: empty line", path, lineNo, dataset.ErrDataFormat)
		}
		split := strings.Split(line, " ")
		question := strings.Join(split[1:], " ")
		guid := setType + "-" + line

		if !withLabel {
			examples = append(examples, dataset.NewLabeledExample(guid, question))
			continue
		}
		label, err := p.label(split[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		examples = append(examples, dataset.NewLabeledExample(guid, question, dataset.WithLabel(label)))
	}

	p.logger.Debug().
		Str("path", path).
		Str("set", setType).
		Int("examples", len(examples)).
		Msg("read split")
	return examples, nil
}

// label turns "coarse:fine" into the vocabulary label for this processor.
func (p *QCProcessor) label(token string) (string, error) {
	parts := strings.Split(token, ":")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: label token %q has no ':'", dataset.ErrDataFormat, token)
	}
	label := parts[0] + "_" + parts[1]
	if p.coarse {
		label = parts[0]
	}
	if _, err := p.vocab.Index(label); err != nil {
		return "", err
	}
	return label, nil
}
