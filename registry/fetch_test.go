package registry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	want := testRecord()

	tests := []struct {
		name      string
		failures  int
		getErr    error
		wantErr   error
		wantCalls int
	}{
		{
			name:      "record returned",
			wantCalls: 1,
		},
		{
			name:      "absence is terminal",
			getErr:    fmt.Errorf("%w: abc123", ErrNotFound),
			wantErr:   ErrNotFound,
			wantCalls: 1,
		},
		{
			name:      "transient failure retried",
			failures:  2,
			wantCalls: 3,
		},
		{
			name:      "retry budget exhausted",
			failures:  100,
			wantErr:   ErrUnavailable,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls int
			mock := &mockLedger{
				GetFunc: func(ctx context.Context, key string) (*Record, error) {
					calls++
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					if calls <= tt.failures {
						return nil, fmt.Errorf("%w: timeout", ErrUnavailable)
					}
					return want, nil
				},
			}
			c := New(mock, fastOpts(WithRetryAttempts(3))...)

			got, err := c.Fetch(context.Background(), "abc123")
			assert.Equal(t, tt.wantCalls, calls)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestClient_Exists(t *testing.T) {
	t.Parallel()

	mock := &mockLedger{
		ExistsFunc: func(ctx context.Context, key string) (bool, error) {
			return key == "present", nil
		},
	}
	c := New(mock, fastOpts()...)

	ok, err := c.Exists(context.Background(), "present")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_Count_RetriesTransient(t *testing.T) {
	t.Parallel()

	var calls int
	mock := &mockLedger{
		CountFunc: func(ctx context.Context) (int, error) {
			calls++
			if calls == 1 {
				return 0, fmt.Errorf("%w: 502", ErrUnavailable)
			}
			return 7, nil
		},
	}
	c := New(mock, fastOpts(WithRetryAttempts(3))...)

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 2, calls)
}

func TestClient_AttemptTimeoutApplied(t *testing.T) {
	t.Parallel()

	mock := &mockLedger{
		GetFunc: func(ctx context.Context, key string) (*Record, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok, "per-attempt context must carry a deadline")
			assert.LessOrEqual(t, time.Until(deadline), time.Second)
			return testRecord(), nil
		},
	}
	c := New(mock, WithTimeout(time.Second))

	_, err := c.Fetch(context.Background(), "abc123")
	require.NoError(t, err)
}
