package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Validation errors for the Guild aggregate
var (
	ErrGuildNameRequired   = errors.New("guild name cannot be empty")
	ErrGuildIconRequired   = errors.New("guild icon cannot be empty")
	ErrGuildMasterRequired = errors.New("guild master must be a valid id")
	ErrNegativeValue       = errors.New("value cannot be negative")
	ErrInvalidOnlineSlot   = errors.New("invalid online slot")
	ErrInvalidGuildTag     = errors.New("invalid guild tag")
)

// Guild is a player community led by exactly one master. Icon holds an
// object-storage key; IconURL carries the resolved signed URL and is never
// persisted. A player can master at most one guild, enforced at the
// repository level through a unique index on master_id.
type Guild struct {
	BaseModel
	EventRecorder `gorm:"-" json:"-"`

	Name         string                          `gorm:"type:varchar(100);not null" json:"name"`
	Notice       *string                         `gorm:"type:varchar(500)" json:"notice,omitempty"`
	Icon         string                          `gorm:"type:varchar(200);not null" json:"icon"`
	IconURL      string                          `gorm:"-" json:"iconUrl,omitempty"`
	Online       datatypes.JSONSlice[OnlineSlot] `json:"online"`
	Tags         datatypes.JSONSlice[GuildTag]   `json:"tags"`
	Level        int                             `gorm:"not null" json:"level"`
	TypeOfIncome int                             `gorm:"not null" json:"typeOfIncome"`
	MasterID     uuid.UUID                       `gorm:"type:uuid;not null;uniqueIndex" json:"masterId"`
}

func (Guild) TableName() string {
	return "guilds"
}

// NewGuild builds a validated guild. Pass uuid.Nil as id to generate one.
func NewGuild(
	createdBy uuid.UUID,
	name, icon string,
	notice *string,
	online []OnlineSlot,
	tags []GuildTag,
	level, typeOfIncome int,
	masterID uuid.UUID,
	id uuid.UUID,
) (*Guild, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrGuildNameRequired
	}
	if strings.TrimSpace(icon) == "" {
		return nil, ErrGuildIconRequired
	}
	if masterID == uuid.Nil {
		return nil, ErrGuildMasterRequired
	}
	if level < 0 || typeOfIncome < 0 {
		return nil, ErrNegativeValue
	}

	g := &Guild{
		BaseModel:    newBaseModel(createdBy, id),
		Name:         strings.TrimSpace(name),
		Notice:       notice,
		Icon:         strings.TrimSpace(icon),
		Level:        level,
		TypeOfIncome: typeOfIncome,
		MasterID:     masterID,
	}
	if err := g.SetOnline(online); err != nil {
		return nil, err
	}
	if err := g.SetTags(tags); err != nil {
		return nil, err
	}
	g.Record(GuildMasterChangedEvent{GuildID: g.ID, MasterID: masterID})
	return g, nil
}

func (g *Guild) UpdateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrGuildNameRequired
	}
	g.Name = strings.TrimSpace(name)
	return nil
}

func (g *Guild) UpdateNotice(notice *string) {
	g.Notice = notice
}

func (g *Guild) UpdateIcon(icon string) error {
	if strings.TrimSpace(icon) == "" {
		return ErrGuildIconRequired
	}
	g.Icon = strings.TrimSpace(icon)
	return nil
}

func (g *Guild) SetOnline(online []OnlineSlot) error {
	for _, s := range online {
		if !s.IsValid() {
			return ErrInvalidOnlineSlot
		}
	}
	g.Online = dedupOnline(online)
	return nil
}

func (g *Guild) SetTags(tags []GuildTag) error {
	for _, t := range tags {
		if !t.IsValid() {
			return ErrInvalidGuildTag
		}
	}
	g.Tags = dedupTags(tags)
	return nil
}

func (g *Guild) UpdateLevel(level int) error {
	if level < 0 {
		return ErrNegativeValue
	}
	g.Level = level
	return nil
}

func (g *Guild) UpdateTypeOfIncome(typeOfIncome int) error {
	if typeOfIncome < 0 {
		return ErrNegativeValue
	}
	g.TypeOfIncome = typeOfIncome
	return nil
}

// UpdateMaster reassigns the guild master and records the change. Whether the
// new master already leads another guild is checked by the service against
// the repository, not here.
func (g *Guild) UpdateMaster(masterID uuid.UUID) error {
	if masterID == uuid.Nil {
		return ErrGuildMasterRequired
	}
	g.MasterID = masterID
	g.Record(GuildMasterChangedEvent{GuildID: g.ID, MasterID: masterID})
	return nil
}

func dedupOnline(slots []OnlineSlot) []OnlineSlot {
	seen := make(map[OnlineSlot]bool, len(slots))
	out := make([]OnlineSlot, 0, len(slots))
	for _, s := range slots {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func dedupTags(tags []GuildTag) []GuildTag {
	seen := make(map[GuildTag]bool, len(tags))
	out := make([]GuildTag, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
