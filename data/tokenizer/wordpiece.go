package tokenizer

import (
	"fmt"
	"strings"
)

// WordPiece is a whole-word fallback for environments without the sugarme
// pipeline: whitespace split, exact vocab lookup, [UNK] otherwise. It does
// not split punctuation or subwords.
type WordPiece struct {
	vocab     map[string]int64
	unkID     int64
	special   specialTokens
	maxSeqLen int
	lowerCase bool
}

// LoadWordPieceFromVocab reads a vocab.txt; a token's id is its line number,
// blank lines included.
func LoadWordPieceFromVocab(path string, maxSeq int, lowerCase bool) (*WordPiece, error) {
	lines, err := readVocab(path)
	if err != nil {
		return nil, err
	}
	return NewWordPiece(lines, maxSeq, lowerCase)
}

// NewWordPiece builds a tokenizer from tokens in id order. Empty entries
// hold an id without naming a token.
func NewWordPiece(tokens []string, maxSeq int, lowerCase bool) (*WordPiece, error) {
	if maxSeq < 2 {
		return nil, fmt.Errorf("%w: max sequence length %d", ErrUnsupported, maxSeq)
	}
	vocab := vocabIndex(tokens)
	unk, ok := vocab["[UNK]"]
	if !ok {
		return nil, fmt.Errorf("%w: vocab has no [UNK] token", ErrUnsupported)
	}
	sp, err := findSpecials(vocab)
	if err != nil {
		return nil, err
	}
	return &WordPiece{vocab: vocab, unkID: unk, special: sp, maxSeqLen: maxSeq, lowerCase: lowerCase}, nil
}

func (w *WordPiece) MaxSeqLen() int { return w.maxSeqLen }

func (w *WordPiece) Encode(segments ...string) (Encoding, error) {
	if err := checkSegments(segments); err != nil {
		return Encoding{}, err
	}
	var b []int64
	if len(segments) == 2 {
		b = w.tokenIDs(segments[1])
	}
	return assemble(w.tokenIDs(segments[0]), b, len(segments) == 2, w.special, w.maxSeqLen)
}

func (w *WordPiece) tokenIDs(text string) []int64 {
	if w.lowerCase {
		text = strings.ToLower(text)
	}
	words := strings.Fields(text)
	ids := make([]int64, len(words))
	for i, word := range words {
		id, ok := w.vocab[word]
		if !ok {
			id = w.unkID
		}
		ids[i] = id
	}
	return ids
}
