package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	tagDomain "github.com/davicafu/hexadmin/internal/tag/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

const cacheTTL = 300

type TagService struct {
	repo    tagDomain.TagRepository
	binding *pagination.Binding[*tagDomain.Tag, sharedDomain.Criteria]
	cache   sharedCache.Cache
	log     *zap.Logger
}

func NewTagService(
	repo tagDomain.TagRepository,
	binding *pagination.Binding[*tagDomain.Tag, sharedDomain.Criteria],
	cache sharedCache.Cache,
	log *zap.Logger,
) *TagService {
	return &TagService{repo: repo, binding: binding, cache: cache, log: log}
}

func (s *TagService) ListTags(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*tagDomain.Tag], error) {
	return s.binding.Paginate(ctx, req)
}

func (s *TagService) GetTag(ctx context.Context, id uuid.UUID) (*tagDomain.Tag, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, tagDomain.CacheKeyByID(id), cacheTTL, s.log,
		func(ctx context.Context) (*tagDomain.Tag, error) {
			return s.repo.GetByID(ctx, id)
		})
}

func (s *TagService) CreateTag(ctx context.Context, in tagDomain.TagInput) (*tagDomain.Tag, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	t := tagDomain.NewTag(in)
	evt := sharedDomain.NewOutboxEvent(tagDomain.Kind, t.ID.String(), tagDomain.TagCreated, t)
	if err := s.repo.Create(ctx, t, evt); err != nil {
		s.log.Warn("Failed to create tag", zap.String("name", t.Name), zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, tagDomain.CacheKeyByID(t.ID), t, cacheTTL, s.log)
	return t, nil
}

func (s *TagService) UpdateTag(ctx context.Context, id uuid.UUID, in tagDomain.TagInput) (*tagDomain.Tag, error) {
	if err := utils.ValidatePresent(in); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Apply(in)

	evt := sharedDomain.NewOutboxEvent(tagDomain.Kind, t.ID.String(), tagDomain.TagUpdated, t)
	if err := s.repo.Update(ctx, t, evt); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, tagDomain.CacheKeyByID(t.ID), t, cacheTTL, s.log)
	return t, nil
}

func (s *TagService) DeleteTag(ctx context.Context, id uuid.UUID) (*tagDomain.Tag, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(tagDomain.Kind, id.String(), tagDomain.TagDeleted, t)
	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheDelete(ctx, s.cache, tagDomain.CacheKeyByID(id), s.log)
	return t, nil
}
