package dto

import (
	"time"

	"github.com/google/uuid"

	"guild-hub-api/internal/domain"
)

// CreateGuildRequest represents the request to create a guild
// @Description The master must be an existing player not already mastering
// @Description another guild. Icon is an object-storage key.
type CreateGuildRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=100" example:"Night Watch"`
	Notice       *string   `json:"notice" binding:"omitempty,max=500"`
	Icon         string    `json:"icon" binding:"required,max=200" example:"icons/nightwatch.png"`
	Online       []int     `json:"online" binding:"omitempty,dive,min=0"`
	Tags         []int     `json:"tags" binding:"omitempty,dive,min=0"`
	Level        int       `json:"level" binding:"min=0" example:"12"`
	TypeOfIncome int       `json:"typeOfIncome" binding:"min=0"`
	MasterID     uuid.UUID `json:"masterId" binding:"required"`
}

// UpdateGuildRequest represents the full-replacement update of a guild
type UpdateGuildRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=100"`
	Notice       *string   `json:"notice" binding:"omitempty,max=500"`
	Icon         string    `json:"icon" binding:"required,max=200"`
	Online       []int     `json:"online" binding:"omitempty,dive,min=0"`
	Tags         []int     `json:"tags" binding:"omitempty,dive,min=0"`
	Level        int       `json:"level" binding:"min=0"`
	TypeOfIncome int       `json:"typeOfIncome" binding:"min=0"`
	MasterID     uuid.UUID `json:"masterId" binding:"required"`
}

// PatchGuildRequest represents a partial update; only provided fields change
type PatchGuildRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Notice       *string    `json:"notice" binding:"omitempty,max=500"`
	Icon         *string    `json:"icon" binding:"omitempty,max=200"`
	Online       []int      `json:"online"`
	Tags         []int      `json:"tags"`
	Level        *int       `json:"level" binding:"omitempty,min=0"`
	TypeOfIncome *int       `json:"typeOfIncome" binding:"omitempty,min=0"`
	MasterID     *uuid.UUID `json:"masterId"`
}

// GuildResponse represents the guild response
// @Description iconUrl is a time-limited signed link resolved from the icon key
type GuildResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Notice       *string    `json:"notice,omitempty"`
	Icon         string     `json:"icon"`
	IconURL      string     `json:"iconUrl,omitempty"`
	Online       []int      `json:"online"`
	Tags         []int      `json:"tags"`
	Level        int        `json:"level"`
	TypeOfIncome int        `json:"typeOfIncome"`
	MasterID     uuid.UUID  `json:"masterId"`
	CreatedAt    time.Time  `json:"createdAt"`
	CreatedByID  uuid.UUID  `json:"createdById"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// NewGuildResponse maps a guild aggregate to its response shape
func NewGuildResponse(g *domain.Guild) GuildResponse {
	online := make([]int, 0, len(g.Online))
	for _, s := range g.Online {
		online = append(online, int(s))
	}
	tags := make([]int, 0, len(g.Tags))
	for _, t := range g.Tags {
		tags = append(tags, int(t))
	}
	return GuildResponse{
		ID:           g.ID,
		Name:         g.Name,
		Notice:       g.Notice,
		Icon:         g.Icon,
		IconURL:      g.IconURL,
		Online:       online,
		Tags:         tags,
		Level:        g.Level,
		TypeOfIncome: g.TypeOfIncome,
		MasterID:     g.MasterID,
		CreatedAt:    g.CreatedAt,
		CreatedByID:  g.CreatedByID,
		UpdatedAt:    g.UpdatedAt,
	}
}

// NewGuildResponseList maps a page of guilds
func NewGuildResponseList(guilds []*domain.Guild) []GuildResponse {
	out := make([]GuildResponse, 0, len(guilds))
	for _, g := range guilds {
		out = append(out, NewGuildResponse(g))
	}
	return out
}

// OnlineSlots converts raw slot numbers into their domain type
func OnlineSlots(values []int) []domain.OnlineSlot {
	out := make([]domain.OnlineSlot, 0, len(values))
	for _, v := range values {
		out = append(out, domain.OnlineSlot(v))
	}
	return out
}

// GuildTags converts raw tag numbers into their domain type
func GuildTags(values []int) []domain.GuildTag {
	out := make([]domain.GuildTag, 0, len(values))
	for _, v := range values {
		out = append(out, domain.GuildTag(v))
	}
	return out
}
