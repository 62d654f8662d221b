package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh3r4rd/file_summarizer/internal/logging"
)

var errFlaky = errors.New("flaky")

func TestDoZeroRetriesRunsOnce(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{}, nil, func() error {
		calls++
		return errFlaky
	})

	require.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	p := Policy{MaxRetries: 3, InitialInterval: time.Millisecond}
	err := Do(context.Background(), p, logging.Discard(), func() error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsAfterMaxRetries(t *testing.T) {
	calls := 0
	p := Policy{MaxRetries: 2, InitialInterval: time.Millisecond}
	err := Do(context.Background(), p, logging.Discard(), func() error {
		calls++
		return errFlaky
	})

	require.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 3, calls)
}

func TestDoPermanentError(t *testing.T) {
	errFatal := errors.New("fatal")
	calls := 0
	p := Policy{
		MaxRetries:      5,
		InitialInterval: time.Millisecond,
		Retryable:       func(err error) bool { return !errors.Is(err, errFatal) },
	}
	err := Do(context.Background(), p, logging.Discard(), func() error {
		calls++
		return errFatal
	})

	require.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
}
