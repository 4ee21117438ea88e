package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "persons/pkg/platform/audit"
	"persons/pkg/platform/audit/store/memory"
)

type failingStore struct{ err error }

func (f failingStore) Append(context.Context, audit.Event) error { return f.err }

func TestFanout(t *testing.T) {
	first := memory.NewInMemoryStore()
	second := memory.NewInMemoryStore()
	boom := errors.New("broker down")

	f := audit.Fanout{first, nil, failingStore{err: boom}, second}
	err := f.Append(context.Background(), audit.Event{
		Action:   string(audit.EventPersonCreated),
		EntityID: "p-1",
	})
	require.ErrorIs(t, err, boom)

	for _, s := range []*memory.InMemoryStore{first, second} {
		events, err := s.ListByEntity(context.Background(), "p-1")
		require.NoError(t, err)
		assert.Len(t, events, 1)
	}
}
