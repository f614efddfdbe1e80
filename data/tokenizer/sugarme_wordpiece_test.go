package tokenizer

import (
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSugar(t testing.TB, maxSeq int) *SugarWordPiece {
	t.Helper()
	swp, err := NewSugarWordPiece(writeVocab(t, testVocab), maxSeq, true)
	require.NoError(t, err)
	return swp
}

func TestSugarWordPieceSingleSegment(t *testing.T) {
	swp := newTestSugar(t, 10)
	assert.Equal(t, 10, swp.MaxSeqLen())

	enc, err := swp.Encode("How do you do it?")
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 4, 5, 6, 5, 7, 8, 3, 0, 0}, enc.IDs)
	assert.Equal(t, []int64{1, 1, 1, 1, 1, 1, 1, 1, 0, 0}, enc.AttentionMask)
	assert.Equal(t, make([]int64, 10), enc.SegmentIDs)
}

func TestSugarWordPieceSubwordsAndUnknown(t *testing.T) {
	swp := newTestSugar(t, 8)

	enc, err := swp.Encode("frogs toads")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 9, 10, 1, 3, 0, 0, 0}, enc.IDs)
}

func TestSugarWordPieceTruncatesLongSegment(t *testing.T) {
	swp := newTestSugar(t, 6)

	enc, err := swp.Encode("how do you")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 5, 6, 3, 0}, enc.IDs)

	// one token more than fits between [CLS] and [SEP]
	enc, err = swp.Encode("how do you do")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 5, 6, 5, 3}, enc.IDs)
	assert.Equal(t, []int64{1, 1, 1, 1, 1, 1}, enc.AttentionMask)

	enc, err = swp.Encode(strings.Repeat("how do you do it ? ", 40))
	require.NoError(t, err)
	require.Len(t, enc.IDs, 6)
	assert.Equal(t, int64(2), enc.IDs[0])
	assert.Equal(t, int64(3), enc.IDs[5])
}

func TestSugarWordPiecePairOverflow(t *testing.T) {
	swp := newTestSugar(t, 6)

	enc, err := swp.Encode("how do you do it", "what what what")
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 4, 3, 11, 11, 3}, enc.IDs)
	assert.Equal(t, []int64{1, 1, 1, 1, 1, 1}, enc.AttentionMask)
	assert.Equal(t, []int64{0, 0, 0, 1, 1, 1}, enc.SegmentIDs)
}

func TestSugarWordPiecePair(t *testing.T) {
	swp := newTestSugar(t, 8)

	enc, err := swp.Encode("how", "what")
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 4, 3, 11, 3, 0, 0, 0}, enc.IDs)
	assert.Equal(t, []int64{0, 0, 0, 1, 1, 0, 0, 0}, enc.SegmentIDs)
}

func TestSugarWordPieceEmptyText(t *testing.T) {
	swp := newTestSugar(t, 4)

	enc, err := swp.Encode("")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 0, 0}, enc.IDs)
	assert.Equal(t, []int64{1, 1, 0, 0}, enc.AttentionMask)
}

func TestSugarWordPieceVocabDirectory(t *testing.T) {
	path := writeVocab(t, testVocab)

	swp, err := NewSugarWordPiece(filepath.Dir(path), 4, true)
	require.NoError(t, err)
	enc, err := swp.Encode("what")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 11, 3, 0}, enc.IDs)
}

func TestSugarWordPieceRequiresSpecialTokens(t *testing.T) {
	path := writeVocab(t, []string{"[PAD]", "[UNK]", "hello"})
	_, err := NewSugarWordPiece(path, 8, true)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = NewSugarWordPiece(filepath.Join(t.TempDir(), "missing.txt"), 8, true)
	assert.Error(t, err)
}

// TestTokenizerParity compares our Go tokenizer output against a reference
// HuggingFace tokenizer (Python). If Python or transformers isn't available
// the test is skipped.
func TestTokenizerParity(t *testing.T) {
	py, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not found; skipping parity test")
	}

	dumpVocab := `import json
from transformers import AutoTokenizer
t=AutoTokenizer.from_pretrained("bert-base-uncased")
v=t.get_vocab()
inv=sorted(v.items(), key=lambda kv:kv[1])
print(json.dumps([k for k,_ in inv]))`

	out, err := exec.Command(py, "-c", dumpVocab).Output()
	if err != nil {
		t.Skipf("python transformers not available or network issue: %v", err)
	}
	var tokens []string
	require.NoError(t, json.Unmarshal(out, &tokens))
	path := writeVocab(t, tokens)

	pyEnc := `import json
from transformers import AutoTokenizer
t=AutoTokenizer.from_pretrained("bert-base-uncased")
out=[]
for a, b in [("How do you do it ?", None), ("What is a group of frogs called ?", "army")]:
    enc=t(a, b, padding='max_length', truncation=True, max_length=32)
    out.append({'ids':enc['input_ids'],'mask':enc['attention_mask'],'types':enc['token_type_ids']})
print(json.dumps(out))`
	out2, err := exec.Command(py, "-c", pyEnc).Output()
	if err != nil {
		t.Skipf("python encode failed: %v", err)
	}
	var want []struct {
		IDs   []int64 `json:"ids"`
		Mask  []int64 `json:"mask"`
		Types []int64 `json:"types"`
	}
	require.NoError(t, json.Unmarshal(out2, &want))
	require.Len(t, want, 2)

	swp, err := NewSugarWordPiece(path, 32, true)
	require.NoError(t, err)

	inputs := [][]string{{"How do you do it ?"}, {"What is a group of frogs called ?", "army"}}
	for i, segments := range inputs {
		enc, err := swp.Encode(segments...)
		require.NoError(t, err)
		assert.Equal(t, want[i].IDs, enc.IDs, "ids for %v", segments)
		assert.Equal(t, want[i].Mask, enc.AttentionMask, "mask for %v", segments)
		assert.Equal(t, want[i].Types, enc.SegmentIDs, "types for %v", segments)
	}
}

func BenchmarkSugarWordPieceEncode(b *testing.B) {
	swp := newTestSugar(b, 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := swp.Encode("how do you do it ?", "what frogs"); err != nil {
			b.Fatal(err)
		}
	}
}
