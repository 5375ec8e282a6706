package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	teamDomain "github.com/davicafu/hexadmin/internal/team/domain"
	"github.com/davicafu/hexadmin/pkg/utils"
)

const cacheTTL = 120

// TeamService gestiona los miembros del equipo y sus avatares.
type TeamService struct {
	repo    teamDomain.TeamRepository
	binding *pagination.Binding[*teamDomain.Member, sharedDomain.Criteria]
	images  sharedDomain.ImageStore
	cache   sharedCache.Cache
	log     *zap.Logger
}

func NewTeamService(
	repo teamDomain.TeamRepository,
	binding *pagination.Binding[*teamDomain.Member, sharedDomain.Criteria],
	images sharedDomain.ImageStore,
	cache sharedCache.Cache,
	log *zap.Logger,
) *TeamService {
	return &TeamService{repo: repo, binding: binding, images: images, cache: cache, log: log}
}

func (s *TeamService) ListMembers(ctx context.Context, req pagination.Request[sharedDomain.Criteria]) (*pagination.Result[*teamDomain.Member], error) {
	return s.binding.Paginate(ctx, req)
}

func (s *TeamService) GetMember(ctx context.Context, id uuid.UUID) (*teamDomain.Member, error) {
	return sharedCache.GetOrLoad(ctx, s.cache, teamDomain.CacheKeyByID(id), cacheTTL, s.log,
		func(ctx context.Context) (*teamDomain.Member, error) {
			return s.repo.GetByID(ctx, id)
		})
}

func (s *TeamService) CreateMember(ctx context.Context, in teamDomain.MemberInput) (*teamDomain.Member, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	m := teamDomain.NewMember(in)
	if in.Image != nil && *in.Image != "" {
		name, err := s.images.Save(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		m.Avatar = &name
	}

	evt := sharedDomain.NewOutboxEvent(teamDomain.Kind, m.ID.String(), teamDomain.MemberCreated, m)
	if err := s.repo.Create(ctx, m, evt); err != nil {
		s.log.Warn("Failed to create team member", zap.Error(err))
		s.removeImage(ctx, m.Avatar)
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, teamDomain.CacheKeyByID(m.ID), m, cacheTTL, s.log)
	return m, nil
}

// UpdateMember aplica los campos recibidos. Con isImageChanged el avatar
// anterior se borra y se sustituye por la nueva imagen (o queda vacío).
func (s *TeamService) UpdateMember(ctx context.Context, id uuid.UUID, in teamDomain.MemberInput) (*teamDomain.Member, error) {
	if err := utils.ValidatePresent(in); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Apply(in)

	oldAvatar := m.Avatar
	if in.IsImageChanged {
		m.Avatar = nil
		if in.Image != nil && *in.Image != "" {
			name, err := s.images.Save(ctx, *in.Image)
			if err != nil {
				return nil, err
			}
			m.Avatar = &name
		}
	}

	evt := sharedDomain.NewOutboxEvent(teamDomain.Kind, m.ID.String(), teamDomain.MemberUpdated, m)
	if err := s.repo.Update(ctx, m, evt); err != nil {
		if in.IsImageChanged {
			s.removeImage(ctx, m.Avatar)
		}
		return nil, err
	}
	if in.IsImageChanged {
		s.removeImage(ctx, oldAvatar)
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, teamDomain.CacheKeyByID(m.ID), m, cacheTTL, s.log)
	return m, nil
}

// DeleteMember borra el registro y su avatar.
func (s *TeamService) DeleteMember(ctx context.Context, id uuid.UUID) (*teamDomain.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(teamDomain.Kind, id.String(), teamDomain.MemberDeleted, m)
	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return nil, err
	}
	s.removeImage(ctx, m.Avatar)

	sharedCache.AsyncCacheDelete(ctx, s.cache, teamDomain.CacheKeyByID(id), s.log)
	return m, nil
}

// removeImage no falla la operación: un fichero huérfano sólo se registra.
func (s *TeamService) removeImage(ctx context.Context, name *string) {
	if name == nil {
		return
	}
	if err := s.images.Remove(ctx, *name); err != nil {
		s.log.Warn("Failed to remove team avatar", zap.String("file", *name), zap.Error(err))
	}
}
