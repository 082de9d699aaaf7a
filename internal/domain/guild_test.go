package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGuild(t *testing.T) *Guild {
	t.Helper()
	guild, err := NewGuild(
		uuid.New(),
		"Night Watch", "icons/nw.png",
		nil,
		[]OnlineSlot{OnlineEvening, OnlineWeekends},
		[]GuildTag{TagRaids, TagHardcore},
		50, 2,
		uuid.New(),
		uuid.Nil,
	)
	require.NoError(t, err)
	return guild
}

func TestNewGuild(t *testing.T) {
	guild := validGuild(t)

	assert.NotEqual(t, uuid.Nil, guild.ID)
	assert.Equal(t, "Night Watch", guild.Name)

	events := guild.DrainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(GuildMasterChangedEvent)
	require.True(t, ok)
	assert.Equal(t, guild.ID, changed.GuildID)
	assert.Equal(t, guild.MasterID, changed.MasterID)
}

func TestNewGuild_Invalid(t *testing.T) {
	master := uuid.New()

	tests := []struct {
		name    string
		build   func() (*Guild, error)
		wantErr error
	}{
		{
			"blank name",
			func() (*Guild, error) {
				return NewGuild(uuid.New(), " ", "icon.png", nil, nil, nil, 1, 0, master, uuid.Nil)
			},
			ErrGuildNameRequired,
		},
		{
			"blank icon",
			func() (*Guild, error) {
				return NewGuild(uuid.New(), "Guild", "", nil, nil, nil, 1, 0, master, uuid.Nil)
			},
			ErrGuildIconRequired,
		},
		{
			"nil master",
			func() (*Guild, error) {
				return NewGuild(uuid.New(), "Guild", "icon.png", nil, nil, nil, 1, 0, uuid.Nil, uuid.Nil)
			},
			ErrGuildMasterRequired,
		},
		{
			"negative level",
			func() (*Guild, error) {
				return NewGuild(uuid.New(), "Guild", "icon.png", nil, nil, nil, -1, 0, master, uuid.Nil)
			},
			ErrNegativeValue,
		},
		{
			"negative income type",
			func() (*Guild, error) {
				return NewGuild(uuid.New(), "Guild", "icon.png", nil, nil, nil, 1, -2, master, uuid.Nil)
			},
			ErrNegativeValue,
		},
		{
			"unknown online slot",
			func() (*Guild, error) {
				return NewGuild(uuid.New(), "Guild", "icon.png", nil, []OnlineSlot{OnlineMorning, 9}, nil, 1, 0, master, uuid.Nil)
			},
			ErrInvalidOnlineSlot,
		},
		{
			"unknown tag",
			func() (*Guild, error) {
				return NewGuild(uuid.New(), "Guild", "icon.png", nil, nil, []GuildTag{-1}, 1, 0, master, uuid.Nil)
			},
			ErrInvalidGuildTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGuild_DeduplicatesSlotsAndTags(t *testing.T) {
	guild := validGuild(t)

	require.NoError(t, guild.SetOnline([]OnlineSlot{OnlineMorning, OnlineMorning, OnlineNight}))
	assert.Equal(t, []OnlineSlot{OnlineMorning, OnlineNight}, []OnlineSlot(guild.Online))

	require.NoError(t, guild.SetTags([]GuildTag{TagPvP, TagPvP, TagCasual, TagPvP}))
	assert.Equal(t, []GuildTag{TagPvP, TagCasual}, []GuildTag(guild.Tags))
}

func TestGuild_RejectsUnknownSlotsAndTags(t *testing.T) {
	guild := validGuild(t)

	assert.ErrorIs(t, guild.SetOnline([]OnlineSlot{OnlineWeekends + 1}), ErrInvalidOnlineSlot)
	assert.Equal(t, []OnlineSlot{OnlineEvening, OnlineWeekends}, []OnlineSlot(guild.Online))

	assert.ErrorIs(t, guild.SetTags([]GuildTag{TagCrafting + 1}), ErrInvalidGuildTag)
	assert.Equal(t, []GuildTag{TagRaids, TagHardcore}, []GuildTag(guild.Tags))
}

func TestGuild_UpdateMaster(t *testing.T) {
	guild := validGuild(t)
	guild.DrainEvents()

	newMaster := uuid.New()
	require.NoError(t, guild.UpdateMaster(newMaster))
	assert.Equal(t, newMaster, guild.MasterID)

	events := guild.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "guild.master_changed", events[0].EventName())

	assert.ErrorIs(t, guild.UpdateMaster(uuid.Nil), ErrGuildMasterRequired)
}

func TestGuild_Updates(t *testing.T) {
	guild := validGuild(t)

	require.NoError(t, guild.UpdateName("  Dawn Patrol  "))
	assert.Equal(t, "Dawn Patrol", guild.Name)
	assert.ErrorIs(t, guild.UpdateName(""), ErrGuildNameRequired)

	require.NoError(t, guild.UpdateIcon("icons/dp.png"))
	assert.ErrorIs(t, guild.UpdateIcon("  "), ErrGuildIconRequired)

	require.NoError(t, guild.UpdateLevel(60))
	assert.ErrorIs(t, guild.UpdateLevel(-1), ErrNegativeValue)

	require.NoError(t, guild.UpdateTypeOfIncome(3))
	assert.ErrorIs(t, guild.UpdateTypeOfIncome(-3), ErrNegativeValue)

	notice := "Recruiting healers"
	guild.UpdateNotice(&notice)
	require.NotNil(t, guild.Notice)
	assert.Equal(t, notice, *guild.Notice)
}
