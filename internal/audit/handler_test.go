package audit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	events "persons/pkg/platform/audit"
	"persons/pkg/platform/audit/store/memory"
	"persons/pkg/testutil"
)

func TestHandleList(t *testing.T) {
	store := memory.NewInMemoryStore()
	personID := uuid.New()
	for _, action := range []events.AuditEvent{events.EventPersonCreated, events.EventPersonUpdated} {
		require.NoError(t, store.Append(context.Background(), events.Event{
			Timestamp:  time.Now(),
			Action:     string(action),
			EntityType: events.EntityPerson,
			EntityID:   personID.String(),
		}))
	}
	require.NoError(t, store.Append(context.Background(), events.Event{Action: "country_created", EntityID: uuid.NewString()}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := testutil.NewRouter(NewHandler(NewService(store), logger))

	t.Run("lists the entity trail", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/admin/audit/"+personID.String(), nil))
		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[ListResponse](t, rr)
		require.Len(t, resp.Events, 2)
		assert.Equal(t, string(events.EventPersonCreated), resp.Events[0].Action)
	})

	t.Run("unknown entity has an empty trail", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/admin/audit/"+uuid.NewString(), nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"events":[]}`, rr.Body.String())
	})

	t.Run("invalid id is a bad request", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/admin/audit/xyz", nil))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})
}
