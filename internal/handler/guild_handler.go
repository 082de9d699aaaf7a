package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/response"
	"guild-hub-api/internal/service"
)

type GuildHandler struct {
	guildService service.GuildService
}

func NewGuildHandler(guildService service.GuildService) *GuildHandler {
	return &GuildHandler{
		guildService: guildService,
	}
}

// ListGuilds godoc
// @Summary      List guilds
// @Description  Returns one page of guilds with resolved icon URLs
// @Tags         guilds
// @Produce      json
// @Param        pageNumber query int false "Page number (1-based)"
// @Param        pageSize query int false "Page size (max 100)"
// @Param        userId query string false "Filter by creating user ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.GuildResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /guilds [get]
func (h *GuildHandler) ListGuilds(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}
	userID, ok := optionalUserIDQuery(c)
	if !ok {
		return
	}

	guilds, meta, err := h.guildService.ListGuilds(c.Request.Context(), params, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendPaged(c, http.StatusOK, guilds, meta)
}

// ListMyGuilds godoc
// @Summary      List the caller's guilds
// @Tags         guilds
// @Produce      json
// @Param        pageNumber query int false "Page number (1-based)"
// @Param        pageSize query int false "Page size (max 100)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.GuildResponse}
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /guilds/by-user [get]
func (h *GuildHandler) ListMyGuilds(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	guilds, meta, err := h.guildService.ListGuilds(c.Request.Context(), params, &userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendPaged(c, http.StatusOK, guilds, meta)
}

// GetGuild godoc
// @Summary      Get a guild
// @Tags         guilds
// @Produce      json
// @Param        id path string true "Guild ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.GuildResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /guilds/{id} [get]
func (h *GuildHandler) GetGuild(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	guild, err := h.guildService.GetGuild(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, guild)
}

// CreateGuild godoc
// @Summary      Create a guild
// @Description  The master must be an existing player and may lead only one guild
// @Tags         guilds
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateGuildRequest true "Guild fields"
// @Success      201 {object} response.SuccessResponse{data=dto.GuildResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /guilds [post]
func (h *GuildHandler) CreateGuild(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	guild, err := h.guildService.CreateGuild(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, guild)
}

// UpdateGuild godoc
// @Summary      Replace a guild
// @Tags         guilds
// @Accept       json
// @Produce      json
// @Param        id path string true "Guild ID (UUID)"
// @Param        request body dto.UpdateGuildRequest true "Guild fields"
// @Success      200 {object} response.SuccessResponse{data=dto.GuildResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /guilds/{id} [put]
func (h *GuildHandler) UpdateGuild(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateGuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	guild, err := h.guildService.UpdateGuild(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, guild)
}

// PatchGuild godoc
// @Summary      Partially update a guild
// @Tags         guilds
// @Accept       json
// @Produce      json
// @Param        id path string true "Guild ID (UUID)"
// @Param        request body dto.PatchGuildRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.GuildResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /guilds/{id} [patch]
func (h *GuildHandler) PatchGuild(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.PatchGuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	guild, err := h.guildService.PatchGuild(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, guild)
}

// DeleteGuild godoc
// @Summary      Delete a guild
// @Description  Only the creating user may delete a guild; members are unassigned
// @Tags         guilds
// @Param        id path string true "Guild ID (UUID)"
// @Success      204 "No Content"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /guilds/{id} [delete]
func (h *GuildHandler) DeleteGuild(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.guildService.DeleteGuild(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
