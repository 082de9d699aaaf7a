package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Validation errors for the Player aggregate
var (
	ErrPlayerNameRequired     = errors.New("player name cannot be empty")
	ErrPlayerPositionRequired = errors.New("player position cannot be empty")
	ErrInvalidClassSpec       = errors.New("invalid class spec")
)

// Player is a user's in-game character. A player optionally belongs to one
// guild; the creating user is also the owner for authorization purposes.
type Player struct {
	BaseModel
	EventRecorder `gorm:"-" json:"-"`

	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Level     int        `gorm:"not null" json:"level"`
	GearScore int        `gorm:"not null" json:"gearScore"`
	Position  string     `gorm:"type:varchar(50);not null" json:"position"`
	ClassSpec ClassSpec  `gorm:"not null" json:"classSpec"`
	GuildID   *uuid.UUID `gorm:"type:uuid;index" json:"guildId,omitempty"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
}

func (Player) TableName() string {
	return "players"
}

// NewPlayer builds a validated player owned by userID. Pass uuid.Nil as id to
// generate one; a nil-or-zero guildID normalizes to no guild.
func NewPlayer(
	userID uuid.UUID,
	name string,
	level, gearScore int,
	position string,
	classSpec ClassSpec,
	guildID *uuid.UUID,
	id uuid.UUID,
) (*Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrPlayerNameRequired
	}
	if strings.TrimSpace(position) == "" {
		return nil, ErrPlayerPositionRequired
	}
	if level < 0 || gearScore < 0 {
		return nil, ErrNegativeValue
	}
	if !classSpec.IsValid() {
		return nil, ErrInvalidClassSpec
	}

	p := &Player{
		BaseModel: newBaseModel(userID, id),
		Name:      strings.TrimSpace(name),
		Level:     level,
		GearScore: gearScore,
		Position:  strings.TrimSpace(position),
		ClassSpec: classSpec,
		GuildID:   normalizeGuildID(guildID),
		UserID:    userID,
	}
	if p.GuildID != nil {
		p.Record(PlayerGuildAssignedEvent{PlayerID: p.ID, GuildID: p.GuildID})
	}
	return p, nil
}

func (p *Player) UpdateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrPlayerNameRequired
	}
	p.Name = strings.TrimSpace(name)
	return nil
}

func (p *Player) UpdateLevel(level int) error {
	if level < 0 {
		return ErrNegativeValue
	}
	p.Level = level
	return nil
}

func (p *Player) UpdateGearScore(gearScore int) error {
	if gearScore < 0 {
		return ErrNegativeValue
	}
	p.GearScore = gearScore
	return nil
}

func (p *Player) UpdatePosition(position string) error {
	if strings.TrimSpace(position) == "" {
		return ErrPlayerPositionRequired
	}
	p.Position = strings.TrimSpace(position)
	return nil
}

func (p *Player) UpdateClassSpec(classSpec ClassSpec) error {
	if !classSpec.IsValid() {
		return ErrInvalidClassSpec
	}
	p.ClassSpec = classSpec
	return nil
}

// AssignGuild moves the player into a guild, or out of any guild when
// guildID is nil or zero.
func (p *Player) AssignGuild(guildID *uuid.UUID) {
	p.GuildID = normalizeGuildID(guildID)
	p.Record(PlayerGuildAssignedEvent{PlayerID: p.ID, GuildID: p.GuildID})
}

func normalizeGuildID(guildID *uuid.UUID) *uuid.UUID {
	if guildID == nil || *guildID == uuid.Nil {
		return nil
	}
	return guildID
}
