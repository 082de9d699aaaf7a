package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
)

// GuildRepository defines the interface for guild data access
type GuildRepository interface {
	Create(ctx context.Context, guild *domain.Guild) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Guild, error)
	FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Guild, int64, error)
	// ExistsWithMaster reports whether any guild other than excludeGuildID is
	// led by masterID. Used to enforce the one-guild-per-master invariant.
	ExistsWithMaster(ctx context.Context, masterID uuid.UUID, excludeGuildID uuid.UUID) (bool, error)
	Update(ctx context.Context, guild *domain.Guild) error
	// Delete removes the guild and unassigns its members in one transaction
	Delete(ctx context.Context, guild *domain.Guild) error
}

// guildRepositoryImpl is the GORM implementation of GuildRepository
type guildRepositoryImpl struct {
	db *gorm.DB
}

// NewGuildRepository creates a new instance of GuildRepository
func NewGuildRepository(db *gorm.DB) GuildRepository {
	return &guildRepositoryImpl{db: db}
}

func (r *guildRepositoryImpl) Create(ctx context.Context, guild *domain.Guild) error {
	return r.db.WithContext(ctx).Create(guild).Error
}

// FindByID returns the guild or nil when it does not exist
func (r *guildRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Guild, error) {
	var guild domain.Guild
	err := r.db.WithContext(ctx).First(&guild, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &guild, nil
}

func (r *guildRepositoryImpl) FindPaged(ctx context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Guild, int64, error) {
	var scopes []func(*gorm.DB) *gorm.DB
	if userID != nil {
		scopes = append(scopes, createdBy(userID.String()))
	}
	return findPaged[domain.Guild](ctx, r.db, params, "", scopes...)
}

func (r *guildRepositoryImpl) ExistsWithMaster(ctx context.Context, masterID uuid.UUID, excludeGuildID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&domain.Guild{}).
		Where("master_id = ?", masterID)
	if excludeGuildID != uuid.Nil {
		query = query.Where("id <> ?", excludeGuildID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *guildRepositoryImpl) Update(ctx context.Context, guild *domain.Guild) error {
	return r.db.WithContext(ctx).Save(guild).Error
}

func (r *guildRepositoryImpl) Delete(ctx context.Context, guild *domain.Guild) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Player{}).
			Where("guild_id = ?", guild.ID).
			Update("guild_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(guild).Error
	})
}
