package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingCompleter はBookingCompleterのモック
type MockBookingCompleter struct {
	mock.Mock
}

func (m *MockBookingCompleter) CompleteElapsed(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestNewCompletedSweeper(t *testing.T) {
	mockService := new(MockBookingCompleter)
	interval := 5 * time.Minute

	sweeper := NewCompletedSweeper(mockService, interval)

	assert.NotNil(t, sweeper)
	assert.Equal(t, interval, sweeper.interval)
	assert.NotNil(t, sweeper.stopCh)
	assert.NotNil(t, sweeper.doneCh)
}

func TestCompletedSweeper_Sweep(t *testing.T) {
	t.Run("正常にスイープが実行される", func(t *testing.T) {
		mockService := new(MockBookingCompleter)
		mockService.On("CompleteElapsed", mock.Anything).Return(3, nil)

		sweeper := NewCompletedSweeper(mockService, time.Minute)
		sweeper.sweep(context.Background())

		mockService.AssertExpectations(t)
	})

	t.Run("対象がない場合も正常に動作する", func(t *testing.T) {
		mockService := new(MockBookingCompleter)
		mockService.On("CompleteElapsed", mock.Anything).Return(0, nil)

		sweeper := NewCompletedSweeper(mockService, time.Minute)
		sweeper.sweep(context.Background())

		mockService.AssertExpectations(t)
	})

	t.Run("エラーが発生しても継続する", func(t *testing.T) {
		mockService := new(MockBookingCompleter)
		mockService.On("CompleteElapsed", mock.Anything).Return(0, assert.AnError)

		sweeper := NewCompletedSweeper(mockService, time.Minute)

		// パニックしないことを確認
		sweeper.sweep(context.Background())

		mockService.AssertExpectations(t)
	})
}

func TestCompletedSweeper_StartStop(t *testing.T) {
	mockService := new(MockBookingCompleter)
	mockService.On("CompleteElapsed", mock.Anything).Return(0, nil).Maybe()

	sweeper := NewCompletedSweeper(mockService, 10*time.Millisecond)

	go sweeper.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()

	// Stop が doneCh を待つので、ここに到達すればワーカーは終了している
	select {
	case <-sweeper.doneCh:
	default:
		t.Fatal("doneCh should be closed after Stop")
	}
}
