package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Player, int64, error)
	FindByGuildID(ctx context.Context, guildID uuid.UUID) ([]*domain.Player, error)
	Update(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, player *domain.Player) error
}

// playerRepositoryImpl is the GORM implementation of PlayerRepository
type playerRepositoryImpl struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new instance of PlayerRepository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepositoryImpl{db: db}
}

func (r *playerRepositoryImpl) Create(ctx context.Context, player *domain.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

// FindByID returns the player or nil when it does not exist
func (r *playerRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	var player domain.Player
	err := r.db.WithContext(ctx).First(&player, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// FindPaged returns one page of players plus the total count, optionally
// filtered to those owned by userID
func (r *playerRepositoryImpl) FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Player, int64, error) {
	var scopes []func(*gorm.DB) *gorm.DB
	if userID != nil {
		id := userID.String()
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", id)
		})
	}
	return findPaged[domain.Player](ctx, r.db, params, "", scopes...)
}

func (r *playerRepositoryImpl) FindByGuildID(ctx context.Context, guildID uuid.UUID) ([]*domain.Player, error) {
	var players []*domain.Player
	if err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepositoryImpl) Update(ctx context.Context, player *domain.Player) error {
	return r.db.WithContext(ctx).Save(player).Error
}

func (r *playerRepositoryImpl) Delete(ctx context.Context, player *domain.Player) error {
	return r.db.WithContext(ctx).Delete(player).Error
}
