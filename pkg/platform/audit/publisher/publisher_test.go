package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "persons/pkg/platform/audit"
	"persons/pkg/platform/audit/store/memory"
)

func personEvent(id string) audit.Event {
	return audit.Event{
		Action:     string(audit.EventPersonCreated),
		EntityType: audit.EntityPerson,
		EntityID:   id,
	}
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	require.NoError(t, pub.Emit(context.Background(), personEvent("p-1")))

	events, err := store.ListByEntity(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventPersonCreated), events[0].Action)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), personEvent("p-1")))
	}

	require.NoError(t, pub.Close())

	events, err := store.ListByEntity(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegisterer(reg)
	pub := NewPublisher(store, WithAsyncBuffer(1), WithMetrics(m))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var dropped int
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if errors.Is(pub.Emit(context.Background(), personEvent("p-1")), ErrBufferFull) {
				mu.Lock()
				dropped++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.NoError(t, pub.Close())

	events, _ := store.ListByEntity(context.Background(), "p-1")
	assert.Equal(t, 50, len(events)+dropped)
	assert.Equal(t, float64(dropped), testutil.ToFloat64(m.Dropped))
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	pub := NewPublisher(store, WithClock(func() time.Time { return fixed }))

	require.NoError(t, pub.Emit(context.Background(), personEvent("p-1")))

	events, _ := store.ListByEntity(context.Background(), "p-1")
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)

	custom := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	event := personEvent("p-1")
	event.Timestamp = custom
	require.NoError(t, pub.Emit(context.Background(), event))

	events, _ := store.ListByEntity(context.Background(), "p-1")
	require.Len(t, events, 1)
	assert.Equal(t, custom, events[0].Timestamp)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error { return errors.New("disk full") }

func TestPublisher_SyncReturnsStoreError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWithRegisterer(reg)
	pub := NewPublisher(failingStore{}, WithMetrics(m))

	err := pub.Emit(context.Background(), personEvent("p-1"))
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistFailures))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Emitted))
}
