package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantErr error
	}{
		{"正常なレビュー", 4, nil},
		{"評価の下限", 1, nil},
		{"評価の上限", 5, nil},
		{"評価ゼロ", 0, ErrInvalidRating},
		{"評価が上限超過", 6, ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReview("cust-1", "resto-1", tt.rating, "美味しかった")
			err := r.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusPending, r.Status)
		})
	}
}

func TestReview_Moderate(t *testing.T) {
	t.Run("承認", func(t *testing.T) {
		r := NewReview("cust-1", "resto-1", 4, "")
		require.NoError(t, r.Moderate(StatusApproved))
		assert.Equal(t, StatusApproved, r.Status)
	})
	t.Run("却下", func(t *testing.T) {
		r := NewReview("cust-1", "resto-1", 1, "")
		require.NoError(t, r.Moderate(StatusRejected))
		assert.Equal(t, StatusRejected, r.Status)
	})
	t.Run("承認済みの再モデレーションは不可", func(t *testing.T) {
		r := NewReview("cust-1", "resto-1", 4, "")
		require.NoError(t, r.Moderate(StatusApproved))
		assert.ErrorIs(t, r.Moderate(StatusRejected), ErrInvalidModeration)
	})
	t.Run("pendingへの差し戻しは不可", func(t *testing.T) {
		r := NewReview("cust-1", "resto-1", 4, "")
		assert.ErrorIs(t, r.Moderate(StatusPending), ErrInvalidModeration)
	})
}
