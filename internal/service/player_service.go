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

// PlayerService defines the interface for player business logic
type PlayerService interface {
	ListPlayers(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]dto.PlayerResponse, *dto.PaginationMetadata, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*dto.PlayerResponse, error)
	CreatePlayer(ctx context.Context, userID uuid.UUID, req *dto.CreatePlayerRequest) (*dto.PlayerResponse, error)
	UpdatePlayer(ctx context.Context, userID, id uuid.UUID, req *dto.UpdatePlayerRequest) (*dto.PlayerResponse, error)
	PatchPlayer(ctx context.Context, userID, id uuid.UUID, req *dto.PatchPlayerRequest) (*dto.PlayerResponse, error)
	DeletePlayer(ctx context.Context, userID, id uuid.UUID) error
}

// playerServiceImpl is the implementation of PlayerService
type playerServiceImpl struct {
	playerRepo repository.PlayerRepository
	guildRepo  repository.GuildRepository
	dispatcher *repository.EventDispatcher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewPlayerService creates a new instance of PlayerService
func NewPlayerService(
	playerRepo repository.PlayerRepository,
	guildRepo repository.GuildRepository,
	dispatcher *repository.EventDispatcher,
	m *metrics.Metrics,
	logger *zap.Logger,
) PlayerService {
	return &playerServiceImpl{
		playerRepo: playerRepo,
		guildRepo:  guildRepo,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

func (s *playerServiceImpl) ListPlayers(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]dto.PlayerResponse, *dto.PaginationMetadata, error) {
	params.Normalize()

	players, total, err := s.playerRepo.FindPaged(ctx, params, userID)
	if err != nil {
		return nil, nil, err
	}

	meta := dto.NewPaginationMetadata(total, params)
	return dto.NewPlayerResponseList(players), meta, nil
}

func (s *playerServiceImpl) GetPlayer(ctx context.Context, id uuid.UUID) (*dto.PlayerResponse, error) {
	player, err := s.playerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Player with ID %s was not found", id))
	}

	resp := dto.NewPlayerResponse(player)
	return &resp, nil
}

func (s *playerServiceImpl) CreatePlayer(ctx context.Context, userID uuid.UUID, req *dto.CreatePlayerRequest) (*dto.PlayerResponse, error) {
	if err := s.checkGuild(ctx, req.GuildID); err != nil {
		return nil, err
	}

	player, err := domain.NewPlayer(
		userID,
		req.Name,
		req.Level, req.GearScore,
		req.Position,
		domain.ClassSpec(req.ClassSpec),
		req.GuildID,
		uuid.Nil,
	)
	if err != nil {
		return nil, response.NewValidationError(err.Error())
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, player)
	s.metrics.IncrementPlayerCreated()

	s.logger.Info("player created",
		zap.String("player_id", player.ID.String()),
		zap.String("user_id", userID.String()))

	resp := dto.NewPlayerResponse(player)
	return &resp, nil
}

func (s *playerServiceImpl) UpdatePlayer(ctx context.Context, userID, id uuid.UUID, req *dto.UpdatePlayerRequest) (*dto.PlayerResponse, error) {
	player, err := s.playerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Player with ID %s was not found", id))
	}

	if err := player.UpdateName(req.Name); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := player.UpdateLevel(req.Level); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := player.UpdateGearScore(req.GearScore); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := player.UpdatePosition(req.Position); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := player.UpdateClassSpec(domain.ClassSpec(req.ClassSpec)); err != nil {
		return nil, response.NewValidationError(err.Error())
	}
	if err := s.checkGuild(ctx, req.GuildID); err != nil {
		return nil, err
	}
	player.AssignGuild(req.GuildID)

	player.SetAuditUpdate(userID)
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, player)

	resp := dto.NewPlayerResponse(player)
	return &resp, nil
}

func (s *playerServiceImpl) PatchPlayer(ctx context.Context, userID, id uuid.UUID, req *dto.PatchPlayerRequest) (*dto.PlayerResponse, error) {
	player, err := s.playerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, response.NewNotFoundError(fmt.Sprintf("Player with ID %s was not found", id))
	}

	if req.Name != nil {
		if err := player.UpdateName(*req.Name); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Level != nil {
		if err := player.UpdateLevel(*req.Level); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.GearScore != nil {
		if err := player.UpdateGearScore(*req.GearScore); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.Position != nil {
		if err := player.UpdatePosition(*req.Position); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.ClassSpec != nil {
		if err := player.UpdateClassSpec(domain.ClassSpec(*req.ClassSpec)); err != nil {
			return nil, response.NewValidationError(err.Error())
		}
	}
	if req.GuildID != nil {
		if err := s.checkGuild(ctx, req.GuildID); err != nil {
			return nil, err
		}
		player.AssignGuild(req.GuildID)
	}

	player.SetAuditUpdate(userID)
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, player)

	resp := dto.NewPlayerResponse(player)
	return &resp, nil
}

// DeletePlayer removes a player. Only the owning user may delete it.
func (s *playerServiceImpl) DeletePlayer(ctx context.Context, userID, id uuid.UUID) error {
	player, err := s.playerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if player == nil {
		return response.NewNotFoundError(fmt.Sprintf("Player with ID %s was not found", id))
	}
	if player.UserID != userID {
		return response.NewForbiddenError("You do not have permission to delete this player")
	}

	if err := s.playerRepo.Delete(ctx, player); err != nil {
		return err
	}
	s.dispatcher.Dispatch(ctx, player)

	s.logger.Info("player deleted", zap.String("player_id", id.String()))
	return nil
}

// checkGuild verifies the referenced guild exists; a nil or zero id means
// "no guild" and always passes
func (s *playerServiceImpl) checkGuild(ctx context.Context, guildID *uuid.UUID) error {
	if guildID == nil || *guildID == uuid.Nil {
		return nil
	}
	guild, err := s.guildRepo.FindByID(ctx, *guildID)
	if err != nil {
		return err
	}
	if guild == nil {
		return response.NewNotFoundError(fmt.Sprintf("Guild with ID %s was not found", *guildID))
	}
	return nil
}
