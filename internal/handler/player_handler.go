package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/response"
	"guild-hub-api/internal/service"
)

type PlayerHandler struct {
	playerService service.PlayerService
}

func NewPlayerHandler(playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// ListPlayers godoc
// @Summary      List players
// @Tags         players
// @Produce      json
// @Param        pageNumber query int false "Page number (1-based)"
// @Param        pageSize query int false "Page size (max 100)"
// @Param        userId query string false "Filter by owning user ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.PlayerResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /players [get]
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}
	userID, ok := optionalUserIDQuery(c)
	if !ok {
		return
	}

	players, meta, err := h.playerService.ListPlayers(c.Request.Context(), params, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendPaged(c, http.StatusOK, players, meta)
}

// ListMyPlayers godoc
// @Summary      List the caller's players
// @Tags         players
// @Produce      json
// @Param        pageNumber query int false "Page number (1-based)"
// @Param        pageSize query int false "Page size (max 100)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.PlayerResponse}
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /players/by-user [get]
func (h *PlayerHandler) ListMyPlayers(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	players, meta, err := h.playerService.ListPlayers(c.Request.Context(), params, &userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendPaged(c, http.StatusOK, players, meta)
}

// GetPlayer godoc
// @Summary      Get a player
// @Tags         players
// @Produce      json
// @Param        id path string true "Player ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.PlayerResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayer(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, player)
}

// CreatePlayer godoc
// @Summary      Create a player
// @Description  An optional guildId must reference an existing guild
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePlayerRequest true "Player fields"
// @Success      201 {object} response.SuccessResponse{data=dto.PlayerResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	player, err := h.playerService.CreatePlayer(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, player)
}

// UpdatePlayer godoc
// @Summary      Replace a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        id path string true "Player ID (UUID)"
// @Param        request body dto.UpdatePlayerRequest true "Player fields"
// @Success      200 {object} response.SuccessResponse{data=dto.PlayerResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /players/{id} [put]
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	player, err := h.playerService.UpdatePlayer(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, player)
}

// PatchPlayer godoc
// @Summary      Partially update a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        id path string true "Player ID (UUID)"
// @Param        request body dto.PatchPlayerRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.PlayerResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /players/{id} [patch]
func (h *PlayerHandler) PatchPlayer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.PatchPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	player, err := h.playerService.PatchPlayer(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, player)
}

// DeletePlayer godoc
// @Summary      Delete a player
// @Description  Only the owning user may delete a player
// @Tags         players
// @Param        id path string true "Player ID (UUID)"
// @Success      204 "No Content"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /players/{id} [delete]
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.playerService.DeletePlayer(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
