package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/metrics"
	"guild-hub-api/internal/repository"
	"guild-hub-api/internal/response"
)

// guildResourceType keys the icon URL cache entries for guilds
const guildResourceType = "guild"

// GuildService defines the interface for guild business logic
type GuildService interface {
	ListGuilds(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]dto.GuildResponse, *dto.PaginationMetadata, error)
	GetGuild(ctx context.Context, id uuid.UUID) (*dto.GuildResponse, error)
	CreateGuild(ctx context.Context, userID uuid.UUID, req *dto.CreateGuildRequest) (*dto.GuildResponse, error)
	UpdateGuild(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateGuildRequest) (*dto.GuildResponse, error)
	PatchGuild(ctx context.Context, userID, id uuid.UUID, req *dto.PatchGuildRequest) (*dto.GuildResponse, error)
	DeleteGuild(ctx context.Context, userID, id uuid.UUID) error
}

// guildServiceImpl is the implementation of GuildService
type guildServiceImpl struct {
	guildRepo  repository.GuildRepository
	playerRepo repository.PlayerRepository
	resolver   PhotoResolver
	dispatcher *repository.EventDispatcher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewGuildService creates a new instance of GuildService
func NewGuildService(
	guildRepo repository.GuildRepository,
	playerRepo repository.PlayerRepository,
	resolver PhotoResolver,
	dispatcher *repository.EventDispatcher,
	m *metrics.Metrics,
	logger *zap.Logger,
) GuildService {
	return &guildServiceImpl{
		guildRepo:  guildRepo,
		playerRepo: playerRepo,
		resolver:   resolver,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// ListGuilds returns one page of guilds with their icon URLs resolved through
// a single batched cache lookup
func (s *guildServiceImpl) ListGuilds(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]dto.GuildResponse, *dto.PaginationMetadata, error) {
	params.Normalize()

	guilds, total, err := s.guildRepo.FindPaged(ctx, params, userID)
	if err != nil {
		return nil, nil, err
	}

	owners := make([]PhotoSet, len(guilds))
	for i, g := range guilds {
		owners[i] = PhotoSet{ID: g.ID, Keys: []string{g.Icon}}
	}
	urls := s.resolver.ResolveBatch(ctx, guildResourceType, owners)
	for i, g := range guilds {
		if len(urls[i]) > 0 {
			g.IconURL = urls[i][0]
		}
	}

	meta := dto.NewPaginationMetadata(total, params)
	return dto.NewGuildResponseList(guilds), meta, nil
}

func (s *guildServiceImpl) GetGuild(ctx context.Context, id uuid.UUID) (*dto.GuildResponse, error) {
	guild, err := s.guildRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guild == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Guild with ID %s was not found", id))
	}

	s.resolveIcon(ctx, guild)

	resp := dto.NewGuildResponse(guild)
	return &resp, nil
}

func (s *guildServiceImpl) CreateGuild(ctx context.Context, userID uuid.UUID, req *dto.CreateGuildRequest) (*dto.GuildResponse, error) {
	if err := s.checkMaster(ctx, req.MasterID, uuid.Nil); err != nil {
		return nil, err
	}

	guild, err := domain.NewGuild(
		userID,
		req.Name, req.Icon, req.Notice,
		dto.OnlineSlots(req.Online),
		dto.GuildTags(req.Tags),
		req.Level, req.TypeOfIncome,
		req.MasterID,
		uuid.Nil,
	)
	if err != nil {
		return nil, response.NewValidationError(err.Error())
	}

	if err := s.guildRepo.Create(ctx, guild); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, guild)
	s.metrics.IncrementGuildCreated()

	s.resolveIcon(ctx, guild)

	s.logger.Info("guild created",
		zap.String("guild_id", guild.ID.String()),
		zap.String("master_id", guild.MasterID.String()))

	resp := dto.NewGuildResponse(guild)
	return &resp, nil
}

func (s *guildServiceImpl) UpdateGuild(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateGuildRequest) (*dto.GuildResponse, error) {
	guild, err := s.guildRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guild == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Guild with ID %s was not found", id))
	}

	if req.MasterID != guild.MasterID {
		if err := s.checkMaster(ctx, req.MasterID, guild.ID); err != nil {
			return nil, err
		}
		if err := guild.UpdateMaster(req.MasterID); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}

	if err := guild.UpdateName(req.Name); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	guild.UpdateNotice(req.Notice)
	if err := guild.UpdateIcon(req.Icon); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := guild.SetOnline(dto.OnlineSlots(req.Online)); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := guild.SetTags(dto.GuildTags(req.Tags)); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := guild.UpdateLevel(req.Level); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := guild.UpdateTypeOfIncome(req.TypeOfIncome); err != nil {
		return nil, response.NewValidationError(err.Error())
	}

	guild.SetAuditUpdate(userID)
	if err := s.guildRepo.Update(ctx, guild); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, guild)

	// the icon key may have changed, so refresh the cached URL
	s.resolver.Evict(ctx, guildResourceType, guild.ID)
	s.resolveIcon(ctx, guild)

	resp := dto.NewGuildResponse(guild)
	return &resp, nil
}

func (s *guildServiceImpl) PatchGuild(ctx context.Context, userID, id uuid.UUID, req *dto.PatchGuildRequest) (*dto.GuildResponse, error) {
	guild, err := s.guildRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guild == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Guild with ID %s was not found", id))
	}

	iconChanged := false
	if req.MasterID != nil && *req.MasterID != guild.MasterID {
		if err := s.checkMaster(ctx, *req.MasterID, guild.ID); err != nil {
			return nil, err
		}
		if err := guild.UpdateMaster(*req.MasterID); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Name != nil {
		if err := guild.UpdateName(*req.Name); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Notice != nil {
		guild.UpdateNotice(req.Notice)
	}
	if req.Icon != nil {
		if err := guild.UpdateIcon(*req.Icon); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
		iconChanged = true
	}
	if req.Online != nil {
		if err := guild.SetOnline(dto.OnlineSlots(req.Online)); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Tags != nil {
		if err := guild.SetTags(dto.GuildTags(req.Tags)); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Level != nil {
		if err := guild.UpdateLevel(*req.Level); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.TypeOfIncome != nil {
		if err := guild.UpdateTypeOfIncome(*req.TypeOfIncome); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}

	guild.SetAuditUpdate(userID)
	if err := s.guildRepo.Update(ctx, guild); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, guild)

	if iconChanged {
		s.resolver.Evict(ctx, guildResourceType, guild.ID)
	}
	s.resolveIcon(ctx, guild)

	resp := dto.NewGuildResponse(guild)
	return &resp, nil
}

// DeleteGuild removes a guild, unassigning its members. Only the creating
// user may delete it.
func (s *guildServiceImpl) DeleteGuild(ctx context.Context, userID, id uuid.UUID) error {
	guild, err := s.guildRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if guild == nil {
		return response.NewNotFoundError(fmt.Sprintf("Guild with ID %s was not found", id))
	}
	if guild.CreatedByID != userID {
		return response.NewForbiddenError("You do not have permission to delete this guild")
	}

	if err := s.guildRepo.Delete(ctx, guild); err != nil {
		return err
	}
	s.resolver.Evict(ctx, guildResourceType, guild.ID)
	s.dispatcher.Dispatch(ctx, guild)

	s.logger.Info("guild deleted", zap.String("guild_id", id.String()))
	return nil
}

// checkMaster verifies the master player exists and does not already lead
// another guild
func (s *guildServiceImpl) checkMaster(ctx context.Context, masterID uuid.UUID, excludeGuildID uuid.UUID) error {
	master, err := s.playerRepo.FindByID(ctx, masterID)
	if err != nil {
		return err
	}
	if master == nil {
		return response.NewNotFoundError(fmt.Sprintf("Player with ID %s was not found", masterID))
	}

	taken, err := s.guildRepo.ExistsWithMaster(ctx, masterID, excludeGuildID)
	if err != nil {
		return err
	}
	if taken {
		return response.NewConflictError(fmt.Sprintf("Player %s is already the master of another guild", masterID))
	}
	return nil
}

func (s *guildServiceImpl) resolveIcon(ctx context.Context, guild *domain.Guild) {
	urls := s.resolver.Resolve(ctx, guildResourceType, guild.ID, []string{guild.Icon})
	if len(urls) > 0 {
		guild.IconURL = urls[0]
	}
}
