package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	activityDomain "github.com/davicafu/hexadmin/internal/activity/domain"
	"github.com/davicafu/hexadmin/internal/activity/infra/outbound/db/sqlrepo"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/tests/mocks"
)

func newActivityService(t *testing.T) *ActivityService {
	db := mocks.NewTestDB(t, sqlrepo.Schema)
	repo := sqlrepo.NewActivityRepo(db)

	registry := pagination.NewRegistry[sharedDomain.Criteria]()
	binding, err := pagination.Register[*activityDomain.Activity, sharedDomain.Criteria](registry, activityDomain.Kind, repo)
	require.NoError(t, err)

	return NewActivityService(repo, binding, zap.NewNop())
}

func event(id, typ, aggregate string, at time.Time) sharedEvents.IntegrationEvent {
	return sharedEvents.IntegrationEvent{
		ID: id, Type: typ, AggregateType: aggregate, AggregateID: "a-" + id,
		Timestamp: at, Data: []byte(`{"id":"a-` + id + `"}`),
	}
}

func TestActivityService_RecordIsIdempotent(t *testing.T) {
	svc := newActivityService(t)
	ctx := context.Background()
	evt := event("e1", "tag.created", "tag", time.Now())

	stored, err := svc.Record(ctx, evt)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = svc.Record(ctx, evt)
	require.NoError(t, err)
	assert.False(t, stored)

	_, err = svc.Record(ctx, sharedEvents.IntegrationEvent{Type: "tag.created"})
	assert.ErrorIs(t, err, activityDomain.ErrInvalidEvent)
}

func TestActivityService_ListNewestFirst(t *testing.T) {
	svc := newActivityService(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	_, err := svc.Record(ctx, event("e1", "product.created", "product", base))
	require.NoError(t, err)
	_, err = svc.Record(ctx, event("e2", "product.updated", "product", base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = svc.Record(ctx, event("e3", "blog.created", "blog", base.Add(2*time.Minute)))
	require.NoError(t, err)

	res, err := svc.ListActivity(ctx, pagination.Request[sharedDomain.Criteria]{
		Page: 1, Limit: 10, Filter: sharedDomain.Eq(activityDomain.FieldAggregateType, "product"),
	})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "e2", res.Data[0].ID)
	assert.Equal(t, "e1", res.Data[1].ID)
	assert.JSONEq(t, `{"id":"a-e1"}`, string(res.Data[1].Payload))
	assert.Equal(t, 2, res.Meta.Total)
}
