package tokenizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
)

// SugarWordPiece wraps sugarme/tokenizer WordPiece (BERT-style). sugarme
// only normalizes, pre-tokenizes and splits subwords; special tokens,
// truncation and padding are laid out by assemble so that every encoding has
// the fixed shape.
type SugarWordPiece struct {
	t         *tk.Tokenizer
	special   specialTokens
	maxSeqLen int
}

// NewSugarWordPiece loads vocab.txt (or a directory holding one) and builds a
// BERT WordPiece pipeline.
func NewSugarWordPiece(vocabPath string, maxSeq int, lowerCase bool) (*SugarWordPiece, error) {
	if maxSeq < 2 {
		return nil, fmt.Errorf("%w: max sequence length %d", ErrUnsupported, maxSeq)
	}
	if fi, err := os.Stat(vocabPath); err == nil && fi.IsDir() {
		vocabPath = filepath.Join(vocabPath, "vocab.txt")
	}
	lines, err := readVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	sp, err := findSpecials(vocabIndex(lines))
	if err != nil {
		return nil, err
	}

	wp, err := wordpiece.NewWordPieceFromFile(vocabPath, "[UNK]")
	if err != nil {
		wp = wordpiece.NewWordPieceBuilder().Files(vocabPath).Build()
	}

	t := tk.NewTokenizer(wp)
	t.WithNormalizer(normalizer.NewBertNormalizer(true, lowerCase, true, lowerCase))
	t.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())
	return &SugarWordPiece{t: t, special: sp, maxSeqLen: maxSeq}, nil
}

func (s *SugarWordPiece) MaxSeqLen() int { return s.maxSeqLen }

func (s *SugarWordPiece) Encode(segments ...string) (Encoding, error) {
	if err := checkSegments(segments); err != nil {
		return Encoding{}, err
	}
	a, err := s.tokenIDs(segments[0])
	if err != nil {
		return Encoding{}, err
	}
	var b []int64
	if len(segments) == 2 {
		if b, err = s.tokenIDs(segments[1]); err != nil {
			return Encoding{}, err
		}
	}
	return assemble(a, b, len(segments) == 2, s.special, s.maxSeqLen)
}

// tokenIDs encodes one segment without special tokens.
func (s *SugarWordPiece) tokenIDs(text string) ([]int64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	enc, err := s.t.Encode(tk.NewSingleEncodeInput(tk.NewInputSequence(text)), false)
	if err != nil {
		return nil, err
	}
	uids := enc.GetIds()
	ids := make([]int64, len(uids))
	for i, id := range uids {
		ids[i] = int64(id)
	}
	return ids, nil
}
