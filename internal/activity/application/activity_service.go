package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	activityDomain "github.com/davicafu/hexadmin/internal/activity/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

// ActivityService registra los eventos publicados y los expone paginados.
type ActivityService struct {
	repo    activityDomain.ActivityRepository
	binding *pagination.Binding[*activityDomain.Activity, sharedDomain.Criteria]
	log     *zap.Logger
}

func NewActivityService(
	repo activityDomain.ActivityRepository,
	binding *pagination.Binding[*activityDomain.Activity, sharedDomain.Criteria],
	log *zap.Logger,
) *ActivityService {
	return &ActivityService{repo: repo, binding: binding, log: log}
}

func (s *ActivityService) ListActivity(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*activityDomain.Activity], error) {
	return s.binding.Paginate(ctx, req)
}

// Record guarda el evento una sola vez; un duplicado no es error.
func (s *ActivityService) Record(ctx context.Context, evt sharedEvents.IntegrationEvent) (bool, error) {
	a, err := activityDomain.FromEvent(evt)
	if err != nil {
		return false, err
	}
	if err := s.repo.Record(ctx, a); err != nil {
		if errors.Is(err, sharedDomain.ErrAlreadyExists) {
			s.log.Debug("Duplicate activity ignored", zap.String("event_id", a.ID))
			return false, nil
		}
		return false, err
	}
	return true, nil
}
