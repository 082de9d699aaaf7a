package dto

import (
	"time"

	"github.com/google/uuid"

	"guild-hub-api/internal/domain"
)

// CreatePlayerRequest represents the request to create a player.
// The owning user is taken from the access token, not the body.
type CreatePlayerRequest struct {
	Name      string     `json:"name" binding:"required,min=2,max=100" example:"Shadowstep"`
	Level     int        `json:"level" binding:"min=0" example:"60"`
	GearScore int        `json:"gearScore" binding:"min=0" example:"1450"`
	Position  string     `json:"position" binding:"required,max=50" example:"DPS"`
	ClassSpec int        `json:"classSpec" binding:"min=0" example:"2"`
	GuildID   *uuid.UUID `json:"guildId"`
}

// UpdatePlayerRequest represents the full-replacement update of a player
type UpdatePlayerRequest struct {
	Name      string     `json:"name" binding:"required,min=2,max=100"`
	Level     int        `json:"level" binding:"min=0"`
	GearScore int        `json:"gearScore" binding:"min=0"`
	Position  string     `json:"position" binding:"required,max=50"`
	ClassSpec int        `json:"classSpec" binding:"min=0"`
	GuildID   *uuid.UUID `json:"guildId"`
}

// PatchPlayerRequest represents a partial update; only provided fields change
type PatchPlayerRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Level     *int       `json:"level" binding:"omitempty,min=0"`
	GearScore *int       `json:"gearScore" binding:"omitempty,min=0"`
	Position  *string    `json:"position" binding:"omitempty,max=50"`
	ClassSpec *int       `json:"classSpec" binding:"omitempty,min=0"`
	GuildID   *uuid.UUID `json:"guildId"`
}

// PlayerResponse represents the player response
type PlayerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Level     int        `json:"level"`
	GearScore int        `json:"gearScore"`
	Position  string     `json:"position"`
	ClassSpec int        `json:"classSpec"`
	GuildID   *uuid.UUID `json:"guildId,omitempty"`
	UserID    uuid.UUID  `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewPlayerResponse maps a player aggregate to its response shape
func NewPlayerResponse(p *domain.Player) PlayerResponse {
	return PlayerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Level:     p.Level,
		GearScore: p.GearScore,
		Position:  p.Position,
		ClassSpec: int(p.ClassSpec),
		GuildID:   p.GuildID,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPlayerResponseList maps a page of players
func NewPlayerResponseList(players []*domain.Player) []PlayerResponse {
	out := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, NewPlayerResponse(p))
	}
	return out
}
