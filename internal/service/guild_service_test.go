package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"guild-hub-api/internal/cache"
	"guild-hub-api/internal/client"
	"guild-hub-api/internal/domain"
	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/response"
)

func newGuildService(guildRepo *mockGuildRepo, playerRepo *mockPlayerRepo, c cache.Cache) GuildService {
	resolver := NewPhotoResolver(c, client.NewMockStorageClient(), 15*time.Minute, newTestMetrics(), zap.NewNop())
	return NewGuildService(guildRepo, playerRepo, resolver, newTestDispatcher(), newTestMetrics(), zap.NewNop())
}

func fixtureGuild(t *testing.T, createdBy, masterID uuid.UUID) *domain.Guild {
	t.Helper()
	guild, err := domain.NewGuild(
		createdBy, "Night Watch", "icons/nw.png", nil,
		[]domain.OnlineSlot{domain.OnlineEvening},
		[]domain.GuildTag{domain.TagRaids},
		50, 2, masterID, uuid.Nil,
	)
	require.NoError(t, err)
	guild.DrainEvents()
	return guild
}

func fixturePlayer(t *testing.T, userID uuid.UUID) *domain.Player {
	t.Helper()
	player, err := domain.NewPlayer(userID, "Vael", 60, 4200, "dps", domain.ClassStormbladeMoonstrike, nil, uuid.Nil)
	require.NoError(t, err)
	return player
}

func validCreateGuildReq(masterID uuid.UUID) *dto.CreateGuildRequest {
	return &dto.CreateGuildRequest{
		Name:         "Night Watch",
		Icon:         "icons/nw.png",
		Online:       []int{int(domain.OnlineEvening)},
		Tags:         []int{int(domain.TagRaids)},
		Level:        50,
		TypeOfIncome: 2,
		MasterID:     masterID,
	}
}

func TestGuildService_CreateGuild(t *testing.T) {
	master := fixturePlayer(t, uuid.New())
	playerRepo := &mockPlayerRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Player, error) {
			return master, nil
		},
	}
	var created *domain.Guild
	guildRepo := &mockGuildRepo{
		CreateFunc: func(_ context.Context, guild *domain.Guild) error {
			created = guild
			return nil
		},
	}
	svc := newGuildService(guildRepo, playerRepo, cache.NewMockCache())

	resp, err := svc.CreateGuild(context.Background(), uuid.New(), validCreateGuildReq(master.ID))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, master.ID, resp.MasterID)
	assert.NotEmpty(t, resp.IconURL)
}

func TestGuildService_CreateGuildRejectsUnknownSlotsAndTags(t *testing.T) {
	master := fixturePlayer(t, uuid.New())
	playerRepo := &mockPlayerRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Player, error) {
			return master, nil
		},
	}
	svc := newGuildService(&mockGuildRepo{}, playerRepo, cache.NewMockCache())

	req := validCreateGuildReq(master.ID)
	req.Online = []int{42}
	_, err := svc.CreateGuild(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
	assert.Contains(t, err.Error(), "invalid online slot")

	req = validCreateGuildReq(master.ID)
	req.Tags = []int{42}
	_, err = svc.CreateGuild(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
	assert.Contains(t, err.Error(), "invalid guild tag")
}

func TestGuildService_PatchGuildRejectsUnknownTag(t *testing.T) {
	guild := fixtureGuild(t, uuid.New(), uuid.New())
	guildRepo := &mockGuildRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Guild, error) {
			return guild, nil
		},
	}
	svc := newGuildService(guildRepo, &mockPlayerRepo{}, cache.NewMockCache())

	_, err := svc.PatchGuild(context.Background(), uuid.New(), guild.ID, &dto.PatchGuildRequest{
		Tags: []int{-1},
	})
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(t, err))
}

func TestGuildService_CreateGuildMasterNotFound(t *testing.T) {
	svc := newGuildService(&mockGuildRepo{}, &mockPlayerRepo{}, cache.NewMockCache())

	_, err := svc.CreateGuild(context.Background(), uuid.New(), validCreateGuildReq(uuid.New()))
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, appErrorCode(t, err))
}

func TestGuildService_CreateGuildMasterAlreadyTaken(t *testing.T) {
	master := fixturePlayer(t, uuid.New())
	playerRepo := &mockPlayerRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Player, error) {
			return master, nil
		},
	}
	guildRepo := &mockGuildRepo{
		ExistsWithMasterFunc: func(_ context.Context, masterID, excludeGuildID uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := newGuildService(guildRepo, playerRepo, cache.NewMockCache())

	_, err := svc.CreateGuild(context.Background(), uuid.New(), validCreateGuildReq(master.ID))
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeAlreadyExists, appErrorCode(t, err))
	assert.Contains(t, err.Error(), "already the master of another guild")
}

func TestGuildService_UpdateGuildSameMasterSkipsCheck(t *testing.T) {
	master := uuid.New()
	guild := fixtureGuild(t, uuid.New(), master)

	masterChecked := false
	guildRepo := &mockGuildRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Guild, error) {
			return guild, nil
		},
		ExistsWithMasterFunc: func(_ context.Context, masterID, excludeGuildID uuid.UUID) (bool, error) {
			masterChecked = true
			return false, nil
		},
	}
	svc := newGuildService(guildRepo, &mockPlayerRepo{}, cache.NewMockCache())

	_, err := svc.UpdateGuild(context.Background(), uuid.New(), guild.ID, &dto.UpdateGuildRequest{
		Name:     "Night Watch",
		Icon:     "icons/nw.png",
		Level:    51,
		MasterID: master,
	})
	require.NoError(t, err)
	assert.False(t, masterChecked)
	assert.Equal(t, 51, guild.Level)
}

func TestGuildService_UpdateGuildNewMasterIsChecked(t *testing.T) {
	guild := fixtureGuild(t, uuid.New(), uuid.New())
	newMaster := fixturePlayer(t, uuid.New())

	guildRepo := &mockGuildRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Guild, error) {
			return guild, nil
		},
		ExistsWithMasterFunc: func(_ context.Context, masterID, excludeGuildID uuid.UUID) (bool, error) {
			// the guild being updated must not count against its own master
			assert.Equal(t, guild.ID, excludeGuildID)
			return false, nil
		},
	}
	playerRepo := &mockPlayerRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Player, error) {
			return newMaster, nil
		},
	}
	svc := newGuildService(guildRepo, playerRepo, cache.NewMockCache())

	resp, err := svc.UpdateGuild(context.Background(), uuid.New(), guild.ID, &dto.UpdateGuildRequest{
		Name:     "Night Watch",
		Icon:     "icons/nw.png",
		MasterID: newMaster.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, newMaster.ID, resp.MasterID)
}

func TestGuildService_PatchGuildEvictsOnlyWhenIconChanges(t *testing.T) {
	guild := fixtureGuild(t, uuid.New(), uuid.New())
	guildRepo := &mockGuildRepo{
		FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Guild, error) {
			return guild, nil
		},
	}

	var evicted []string
	mockCache := cache.NewMockCache()
	mockCache.RemoveFunc = func(_ context.Context, key string) error {
		evicted = append(evicted, key)
		return nil
	}
	svc := newGuildService(guildRepo, &mockPlayerRepo{}, mockCache)

	level := 55
	_, err := svc.PatchGuild(context.Background(), uuid.New(), guild.ID, &dto.PatchGuildRequest{Level: &level})
	require.NoError(t, err)
	assert.Empty(t, evicted)

	icon := "icons/new.png"
	_, err = svc.PatchGuild(context.Background(), uuid.New(), guild.ID, &dto.PatchGuildRequest{Icon: &icon})
	require.NoError(t, err)
	assert.Equal(t, []string{"v1:guild:" + guild.ID.String() + ":photos"}, evicted)
}

func TestGuildService_GetGuildNotFound(t *testing.T) {
	svc := newGuildService(&mockGuildRepo{}, &mockPlayerRepo{}, cache.NewMockCache())

	_, err := svc.GetGuild(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, response.ErrCodeNotFound, appErrorCode(t, err))
}

func TestGuildService_ListGuildsResolvesIcons(t *testing.T) {
	owner := uuid.New()
	guilds := []*domain.Guild{
		fixtureGuild(t, owner, uuid.New()),
		fixtureGuild(t, owner, uuid.New()),
	}
	guildRepo := &mockGuildRepo{
		FindPagedFunc: func(_ context.Context, params dto.PaginationParams, userID *uuid.UUID) ([]*domain.Guild, int64, error) {
			return guilds, 2, nil
		},
	}
	svc := newGuildService(guildRepo, &mockPlayerRepo{}, cache.NewMockCache())

	resp, meta, err := svc.ListGuilds(context.Background(), dto.PaginationParams{}, nil)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.NotEmpty(t, resp[0].IconURL)
	assert.NotEmpty(t, resp[1].IconURL)
	assert.Equal(t, int64(2), meta.TotalCount)
}

func TestGuildService_DeleteGuild(t *testing.T) {
	owner := uuid.New()
	guild := fixtureGuild(t, owner, uuid.New())

	t.Run("only the creator may delete", func(t *testing.T) {
		guildRepo := &mockGuildRepo{
			FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Guild, error) {
				return guild, nil
			},
		}
		svc := newGuildService(guildRepo, &mockPlayerRepo{}, cache.NewMockCache())
		err := svc.DeleteGuild(context.Background(), uuid.New(), guild.ID)
		require.Error(t, err)
		assert.Equal(t, response.ErrCodeForbidden, appErrorCode(t, err))
	})

	t.Run("deletes and evicts", func(t *testing.T) {
		deleted := false
		guildRepo := &mockGuildRepo{
			FindByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Guild, error) {
				return guild, nil
			},
			DeleteFunc: func(_ context.Context, g *domain.Guild) error {
				deleted = true
				return nil
			},
		}

		mockCache := cache.NewMockCache()
		cacheKey := "v1:guild:" + guild.ID.String() + ":photos"
		require.NoError(t, mockCache.Set(context.Background(), cacheKey, []byte(`["url"]`), time.Minute))

		svc := newGuildService(guildRepo, &mockPlayerRepo{}, mockCache)
		require.NoError(t, svc.DeleteGuild(context.Background(), owner, guild.ID))
		assert.True(t, deleted)
		assert.False(t, mockCache.Contains(cacheKey))
	})
}
