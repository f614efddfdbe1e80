package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Tokenizer converts one or two text segments to fixed-length token IDs,
// attention mask and segment IDs
type Tokenizer interface {
	MaxSeqLen() int
	Encode(segments ...string) (Encoding, error)
}

// Encoding is the tokenizer output for one example. Every slice is exactly
// MaxSeqLen long.
type Encoding struct {
	IDs           []int64
	AttentionMask []int64
	SegmentIDs    []int64
}

// Config holds basic tokenizer settings
type Config struct {
	Name      string
	VocabPath string
	MaxSeqLen int
	LowerCase bool
}

// ErrUnsupported indicates the tokenizer could not be initialized
var ErrUnsupported = fmt.Errorf("unsupported tokenizer configuration")

// New selects a tokenizer implementation by name: "sugarme" (the default) or
// the whole-word "wordpiece" fallback.
func New(cfg Config) (Tokenizer, error) {
	if cfg.MaxSeqLen < 2 {
		return nil, fmt.Errorf("%w: max sequence length %d", ErrUnsupported, cfg.MaxSeqLen)
	}
	if cfg.VocabPath == "" {
		return nil, fmt.Errorf("%w: vocab path is required", ErrUnsupported)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "sugarme", "bert", "":
		return NewSugarWordPiece(cfg.VocabPath, cfg.MaxSeqLen, cfg.LowerCase)
	case "wordpiece":
		return LoadWordPieceFromVocab(cfg.VocabPath, cfg.MaxSeqLen, cfg.LowerCase)
	default:
		return nil, fmt.Errorf("%w: unknown tokenizer %q", ErrUnsupported, cfg.Name)
	}
}

func checkSegments(segments []string) error {
	if len(segments) != 1 && len(segments) != 2 {
		return fmt.Errorf("expected 1 or 2 segments, got %d", len(segments))
	}
	return nil
}

func newEncoding(maxSeqLen int) Encoding {
	return Encoding{
		IDs:           make([]int64, maxSeqLen),
		AttentionMask: make([]int64, maxSeqLen),
		SegmentIDs:    make([]int64, maxSeqLen),
	}
}

// specialTokens are the ids framing every encoding.
type specialTokens struct {
	cls, sep, pad int64
}

// readVocab returns the lines of a vocab.txt. Blank lines are kept as empty
// entries so that a token's index is always its line number.
func readVocab(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocab %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocab %s: %w", path, err)
	}
	return lines, nil
}

// vocabIndex maps tokens to line numbers; the first occurrence wins.
func vocabIndex(lines []string) map[string]int64 {
	vocab := make(map[string]int64, len(lines))
	for i, tok := range lines {
		if tok == "" {
			continue
		}
		if _, dup := vocab[tok]; !dup {
			vocab[tok] = int64(i)
		}
	}
	return vocab
}

// findSpecials requires [CLS] and [SEP]; [PAD] defaults to id 0.
func findSpecials(vocab map[string]int64) (specialTokens, error) {
	cls, okCLS := vocab["[CLS]"]
	sep, okSEP := vocab["[SEP]"]
	if !okCLS || !okSEP {
		return specialTokens{}, fmt.Errorf("%w: vocab has no [CLS]/[SEP] tokens", ErrUnsupported)
	}
	return specialTokens{cls: cls, sep: sep, pad: vocab["[PAD]"]}, nil
}

// assemble lays out [CLS] a [SEP] or [CLS] a [SEP] b [SEP] in maxSeqLen
// slots. Content tokens are trimmed longest segment first, so the special
// tokens and at least the head of both segments always survive.
func assemble(a, b []int64, pair bool, sp specialTokens, maxSeqLen int) (Encoding, error) {
	special := 2
	if pair {
		special = 3
	}
	if maxSeqLen < special {
		return Encoding{}, fmt.Errorf("%w: max sequence length %d cannot hold %d special tokens", ErrUnsupported, maxSeqLen, special)
	}
	for len(a)+len(b) > maxSeqLen-special {
		if len(a) >= len(b) {
			a = a[:len(a)-1]
		} else {
			b = b[:len(b)-1]
		}
	}

	enc := newEncoding(maxSeqLen)
	pos := 0
	put := func(id, segment int64) {
		enc.IDs[pos] = id
		enc.AttentionMask[pos] = 1
		enc.SegmentIDs[pos] = segment
		pos++
	}
	put(sp.cls, 0)
	for _, id := range a {
		put(id, 0)
	}
	put(sp.sep, 0)
	if pair {
		for _, id := range b {
			put(id, 1)
		}
		put(sp.sep, 1)
	}
	for ; pos < maxSeqLen; pos++ {
		enc.IDs[pos] = sp.pad
	}
	return enc, nil
}
