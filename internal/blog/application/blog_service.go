package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	blogDomain "github.com/davicafu/hexadmin/internal/blog/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/pkg/utils"
)

const cacheTTL = 120

// BlogService publica y mantiene las entradas del blog.
type BlogService struct {
	repo    blogDomain.BlogRepository
	binding *pagination.Binding[*blogDomain.Blog, sharedDomain.Criteria]
	images  sharedDomain.ImageStore
	cache   sharedCache.Cache
	log     *zap.Logger
}

func NewBlogService(
	repo blogDomain.BlogRepository,
	binding *pagination.Binding[*blogDomain.Blog, sharedDomain.Criteria],
	images sharedDomain.ImageStore,
	cache sharedCache.Cache,
	log *zap.Logger,
) *BlogService {
	return &BlogService{repo: repo, binding: binding, images: images, cache: cache, log: log}
}

// ListBlogs siempre incluye el autor.
func (s *BlogService) ListBlogs(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*blogDomain.Blog], error) {
	req.Include = []string{blogDomain.IncludeUser}
	return s.binding.Paginate(ctx, req)
}

func (s *BlogService) GetBlog(ctx context.Context, id uuid.UUID) (*blogDomain.Blog, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, blogDomain.CacheKeyByID(id), cacheTTL, s.log,
		func(ctx context.Context) (*blogDomain.Blog, error) {
			return s.repo.GetByID(ctx, id, blogDomain.IncludeUser)
		})
}

// CreateBlog firma la entrada con el usuario autenticado.
func (s *BlogService) CreateBlog(ctx context.Context, userID uuid.UUID, in blogDomain.BlogInput) (*blogDomain.Blog, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}
	b, err := blogDomain.NewBlog(userID, in)
	if err != nil {
		return nil, err
	}

	if in.Image != nil && *in.Image != "" {
		name, err := s.images.Save(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		b.Image = &name
	}

	evt := sharedDomain.NewOutboxEvent(blogDomain.Kind, b.ID.String(), blogDomain.BlogCreated, b)
	if err := s.repo.Create(ctx, b, evt); err != nil {
		s.log.Warn("Failed to create blog", zap.Error(err))
		s.removeImage(ctx, b.Image)
		return nil, err
	}
	return b, nil
}

// UpdateBlog mantiene el autor original. Con isImageChanged la imagen se reemplaza o se quita.
func (s *BlogService) UpdateBlog(ctx context.Context, id uuid.UUID, in blogDomain.BlogInput) (*blogDomain.Blog, error) {
	if err := utils.ValidatePresent(in); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Apply(in); err != nil {
		return nil, err
	}

	oldImage := b.Image
	if in.IsImageChanged {
		b.Image = nil
		if in.Image != nil && *in.Image != "" {
			name, err := s.images.Save(ctx, *in.Image)
			if err != nil {
				return nil, err
			}
			b.Image = &name
		}
	}

	evt := sharedDomain.NewOutboxEvent(blogDomain.Kind, b.ID.String(), blogDomain.BlogUpdated, b)
	if err := s.repo.Update(ctx, b, evt); err != nil {
		if in.IsImageChanged {
			s.removeImage(ctx, b.Image)
		}
		return nil, err
	}
	if in.IsImageChanged {
		s.removeImage(ctx, oldImage)
	}

	sharedCache.AsyncCacheDelete(ctx, s.cache, blogDomain.CacheKeyByID(id), s.log)
	return b, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id uuid.UUID) (*blogDomain.Blog, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(blogDomain.Kind, id.String(), blogDomain.BlogDeleted, b)
	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return nil, err
	}
	s.removeImage(ctx, b.Image)

	sharedCache.AsyncCacheDelete(ctx, s.cache, blogDomain.CacheKeyByID(id), s.log)
	return b, nil
}

func (s *BlogService) removeImage(ctx context.Context, name *string) {
	if name == nil {
		return
	}
	if err := s.images.Remove(ctx, *name); err != nil {
		s.log.Warn("Failed to remove blog image", zap.String("file", *name), zap.Error(err))
	}
}
