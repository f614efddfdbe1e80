package dataset

import "fmt"

// NoLabelID is the label id of unlabeled and padding feature vectors.
const NoLabelID = -1

// FeatureVector is the fixed-shape numeric form of one Example.
type FeatureVector struct {
	TokenIDs      []int64
	AttentionMask []int64
	SegmentIDs    []int64
	LabelID       int
	// LabelMask is nil unless token level label masks are enabled.
	LabelMask     []int64
	IsRealExample bool
}

// Validate checks that every per-token slice has exactly seqLen entries.
func (f FeatureVector) Validate(seqLen int) error {
	if len(f.TokenIDs) != seqLen {
		return fmt.Errorf("%w: token_ids has %d entries, want %d", ErrShape, len(f.TokenIDs), seqLen)
	}
	if len(f.AttentionMask) != seqLen {
		return fmt.Errorf("%w: attention_mask has %d entries, want %d", ErrShape, len(f.AttentionMask), seqLen)
	}
	if len(f.SegmentIDs) != seqLen {
		return fmt.Errorf("%w: segment_ids has %d entries, want %d", ErrShape, len(f.SegmentIDs), seqLen)
	}
	if f.LabelMask != nil && len(f.LabelMask) != seqLen {
		return fmt.Errorf("%w: label_mask has %d entries, want %d", ErrShape, len(f.LabelMask), seqLen)
	}
	return nil
}
