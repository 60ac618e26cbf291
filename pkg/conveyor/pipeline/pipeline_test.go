package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/conveyor/pkg/conveyor"
)

func TestRun_PreservesOrderWithSmallQueue(t *testing.T) {
	t.Parallel()

	out, err := Run(context.Background(), FromSlice([]int{1, 2, 3, 4, 5}), 2)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out)
}

func TestRun_EmptySource(t *testing.T) {
	t.Parallel()

	out, err := Run(context.Background(), FromSlice([]int{}), 3)

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRun_NilPayloadIsNotEndOfStream(t *testing.T) {
	t.Parallel()

	one, three := 1, 3
	in := []*int{&one, nil, &three}

	out, err := Run(context.Background(), FromSlice(in), 2)

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Same(t, &one, out[0])
	assert.Nil(t, out[1])
	assert.Same(t, &three, out[2])
}

func TestRun_ZeroValuesPassThrough(t *testing.T) {
	t.Parallel()

	out, err := Run(context.Background(), FromSlice([]string{"", "a", ""}), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"", "a", ""}, out)
}

func TestRun_LargeSourceQueueSizeOne(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in := make([]int, 10_000)
	for i := range in {
		in[i] = i
	}

	out, err := Run(ctx, FromSeq(slices.Values(in)), 1)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRun_InvalidQueueSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -3} {
		out, err := Run(context.Background(), FromSlice([]int{1}), size)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, conveyor.ErrInvalidArgument)
	}
}

func TestRun_SourceErrorKeepsPartialOutput(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := func(yield func(int, error) bool) {
		for i := 1; i <= 3; i++ {
			if !yield(i, nil) {
				return
			}
		}
		yield(0, boom)
	}

	out, err := Run(context.Background(), src, 2)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2, 3}, out)
}

func TestRun_CancelReleasesBothSides(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan int)
	go func() {
		ch <- 1
		cancel()
	}()

	done := make(chan struct{})
	var (
		out []int
		err error
	)
	go func() {
		defer close(done)
		out, err = Run(ctx, FromChan(ctx, ch), 1)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop after cancel")
	}
	assert.True(t, conveyor.IsCancellationError(err), "got %v", err)
	assert.LessOrEqual(t, len(out), 1)
}

func TestRun_DeadlineWithEndlessSource(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	endless := func(yield func(int, error) bool) {
		for i := 0; yield(i, nil); i++ {
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := Run(ctx, endless, 1)
		done <- err
	}()

	select {
	case err := <-done:
		assert.True(t, conveyor.IsCancellationError(err), "got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline hung after the deadline")
	}
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	res := Execute(context.Background(), FromSlice([]string{"a", "b"}), 1)

	require.True(t, res.IsSuccess(), "err: %v", res.Err())
	assert.Equal(t, []string{"a", "b"}, res.Result())
	assert.NotEqual(t, uuid.Nil, res.Id())
	assert.False(t, res.CreatedAt().IsZero())
}

func TestExecute_Failures(t *testing.T) {
	t.Parallel()

	res := Execute(context.Background(), FromSlice([]int{1}), 0)
	assert.True(t, res.IsFailure())
	assert.False(t, res.HasResult())
	assert.ErrorIs(t, res.Err(), conveyor.ErrInvalidArgument)

	boom := errors.New("boom")
	res = Execute(context.Background(), func(yield func(int, error) bool) {
		if yield(7, nil) {
			yield(0, boom)
		}
	}, 4)
	assert.True(t, res.IsFailure())
	assert.True(t, res.HasResult())
	assert.Equal(t, []int{7}, res.Result())
	assert.Len(t, conveyor.GetErrors(res.Err()), 1)
}

func TestExecute_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Execute(ctx, FromChan(ctx, make(chan int)), 1)

	assert.True(t, res.IsCancel(), "err: %v", res.Err())
	assert.False(t, res.IsSuccess())
}
