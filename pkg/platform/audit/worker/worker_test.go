package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "persons/pkg/platform/audit"
	"persons/pkg/platform/audit/store/memory"
)

func TestWorkerDrainsClosedInbox(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan audit.Event, 3)
	for i := 0; i < 3; i++ {
		inbox <- audit.Event{Action: string(audit.EventPersonCreated), EntityID: "p-1"}
	}
	close(inbox)

	err := NewWorker(store, inbox, nil, nil).Run(context.Background())
	require.NoError(t, err)

	events, _ := store.ListByEntity(context.Background(), "p-1")
	assert.Len(t, events, 3)
}

type errStore struct{}

func (errStore) Append(context.Context, audit.Event) error { return errors.New("down") }

func TestWorkerCountsFailuresAndStopsOnCancel(t *testing.T) {
	var failures atomic.Int32
	inbox := make(chan audit.Event)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewWorker(errStore{}, inbox, nil, func() { failures.Add(1) }).Run(ctx)
	}()

	inbox <- audit.Event{Action: string(audit.EventPersonDeleted)}
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, int32(1), failures.Load())
}
