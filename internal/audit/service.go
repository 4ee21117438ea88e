// Package audit exposes the recorded audit trail of persons and countries.
package audit

import (
	"context"

	"github.com/google/uuid"

	dErrors "persons/pkg/domain-errors"
	events "persons/pkg/platform/audit"
)

// Service reads the audit trail. It is read-only; events are written by the
// publisher in pkg/platform/audit.
type Service struct {
	lister events.Lister
}

func NewService(lister events.Lister) *Service {
	return &Service{lister: lister}
}

// List returns the events recorded for one person or country, oldest first.
func (s *Service) List(ctx context.Context, entityID string) ([]events.Event, error) {
	id, err := uuid.Parse(entityID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid entity id")
	}
	out, err := s.lister.ListByEntity(ctx, id.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	if out == nil {
		out = []events.Event{}
	}
	return out, nil
}
