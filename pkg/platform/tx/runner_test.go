package tx

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "persons/pkg/domain-errors"
)

func TestInMemoryRunner(t *testing.T) {
	t.Run("propagates callback error", func(t *testing.T) {
		r := NewInMemoryRunner()
		want := errors.New("boom")
		err := r.RunInTx(context.Background(), func(context.Context) error { return want })
		require.ErrorIs(t, err, want)
	})

	t.Run("rejects cancelled context", func(t *testing.T) {
		r := NewInMemoryRunner()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		called := false
		err := r.RunInTx(ctx, func(context.Context) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
		assert.False(t, called)
	})

	t.Run("serialises callbacks", func(t *testing.T) {
		r := NewInMemoryRunner()
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			active  int
			maxSeen int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = r.RunInTx(context.Background(), func(context.Context) error {
					mu.Lock()
					active++
					if active > maxSeen {
						maxSeen = active
					}
					mu.Unlock()

					mu.Lock()
					active--
					mu.Unlock()
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, maxSeen)
	})
}

func TestFromWithoutTx(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)
	assert.Equal(t, context.Background(), WithTx(context.Background(), nil))
}
