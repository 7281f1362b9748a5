package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr error
	}{
		{"保留から確定", StatusPending, StatusConfirmed, nil},
		{"保留からキャンセル", StatusPending, StatusCancelled, nil},
		{"確定から完了", StatusConfirmed, StatusCompleted, nil},
		{"確定からキャンセル", StatusConfirmed, StatusCancelled, nil},
		{"保留から完了は不可", StatusPending, StatusCompleted, ErrInvalidStatusTransition},
		{"確定から保留は不可", StatusConfirmed, StatusPending, ErrInvalidStatusTransition},
		{"キャンセルから確定は不可", StatusCancelled, StatusConfirmed, ErrInvalidStatusTransition},
		{"キャンセルから保留は不可", StatusCancelled, StatusPending, ErrInvalidStatusTransition},
		{"完了からキャンセルは不可", StatusCompleted, StatusCancelled, ErrInvalidStatusTransition},
		{"完了から確定は不可", StatusCompleted, StatusConfirmed, ErrInvalidStatusTransition},
		{"自己遷移は不可", StatusPending, StatusPending, ErrInvalidStatusTransition},
		{"不明なステータス", StatusPending, Status("archived"), ErrUnknownStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestTransition_TableCompleteness は遷移表に載っていない全ての組が拒否されることを確認する
func TestTransition_TableCompleteness(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
	legal := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			err := Transition(from, to)
			if legal[[2]Status{from, to}] {
				assert.NoError(t, err, "%s -> %s は許可されるべき", from, to)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition, "%s -> %s は拒否されるべき", from, to)
			}
		}
	}
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}
