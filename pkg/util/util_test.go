package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormatDateTpl(t *testing.T) {
	ts := time.Date(2023, 11, 10, 7, 5, 9, 0, time.UTC)

	assert.Equal(t, "2023.11.10", FormatDateTpl(ts, "YYYY.MM.DD"))
	assert.Equal(t, "10/11/23", FormatDateTpl(ts, "DD/MM/YY"))
	assert.Equal(t, "2023-11-10 07:05:09", FormatDateTpl(ts, "YYYY-MM-DD hh:mm:ss"))
	assert.Empty(t, FormatDateTpl(time.Time{}, "YYYY"))
}

func TestParallel(t *testing.T) {
	var sum atomic.Int64
	err := Parallel(context.Background(), []int{1, 2, 3, 4, 5}, 3, func(_ context.Context, n int) error {
		sum.Add(int64(n))
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(15), sum.Load())
}

func TestParallel_FirstErrorStops(t *testing.T) {
	boom := errors.New("boom")
	inputs := make([]int, 100)

	var calls atomic.Int64
	err := Parallel(context.Background(), inputs, 1, func(context.Context, int) error {
		calls.Add(1)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), calls.Load())
}

func TestParallel_Empty(t *testing.T) {
	assert.NoError(t, Parallel(context.Background(), []int(nil), 4, func(context.Context, int) error {
		t.Fatal("not called")
		return nil
	}))
}
