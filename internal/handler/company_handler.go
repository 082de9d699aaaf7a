package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guild-hub-api/internal/dto"
	"guild-hub-api/internal/middleware"
	"guild-hub-api/internal/response"
	"guild-hub-api/internal/service"
)

// photoFormField is the multipart field company photo files are read from
const photoFormField = "companyPhotos"

type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// ListCompanies godoc
// @Summary      List companies
// @Description  Returns one page of companies with resolved photo URLs
// @Tags         companies
// @Produce      json
// @Param        pageNumber query int false "Page number (1-based)"
// @Param        pageSize query int false "Page size (max 100)"
// @Param        userId query string false "Filter by creating user ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CompanyResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}
	userID, ok := optionalUserIDQuery(c)
	if !ok {
		return
	}

	companies, meta, err := h.companyService.ListCompanies(c.Request.Context(), params, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendPaged(c, http.StatusOK, companies, meta)
}

// ListMyCompanies godoc
// @Summary      List the caller's companies
// @Description  Returns one page of companies created by the authenticated user
// @Tags         companies
// @Produce      json
// @Param        pageNumber query int false "Page number (1-based)"
// @Param        pageSize query int false "Page size (max 100)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CompanyResponse}
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/by-user [get]
func (h *CompanyHandler) ListMyCompanies(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	companies, meta, err := h.companyService.ListCompanies(c.Request.Context(), params, &userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendPaged(c, http.StatusOK, companies, meta)
}

// GetCompany godoc
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CompanyResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, company)
}

// CreateCompany godoc
// @Summary      Create a company
// @Description  Multipart form; photo files go in the "companyPhotos" field
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        request formData dto.CreateCompanyRequest true "Company fields"
// @Success      201 {object} response.SuccessResponse{data=dto.CompanyResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	photos, ok := formPhotos(c)
	if !ok {
		return
	}
	defer closePhotos(photos)

	company, err := h.companyService.CreateCompany(c.Request.Context(), userID, &req, photos)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, company)
}

// UpdateCompany godoc
// @Summary      Replace a company
// @Description  Full replacement. Attached photo files are added to the stored
// @Description  set; keys in "photosToDelete" are removed from it.
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Company ID (UUID)"
// @Param        request formData dto.UpdateCompanyRequest true "Company fields"
// @Success      200 {object} response.SuccessResponse{data=dto.CompanyResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	photos, ok := formPhotos(c)
	if !ok {
		return
	}
	defer closePhotos(photos)

	company, err := h.companyService.UpdateCompany(c.Request.Context(), userID, id, &req, photos)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, company)
}

// PatchCompany godoc
// @Summary      Partially update a company
// @Description  Merges provided fields over the current state and re-validates
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID (UUID)"
// @Param        request body dto.PatchCompanyRequest true "Fields to change"
// @Success      200 {object} response.SuccessResponse{data=dto.CompanyResponse}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [patch]
func (h *CompanyHandler) PatchCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.PatchCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	company, err := h.companyService.PatchCompany(c.Request.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, company)
}

// DeleteCompany godoc
// @Summary      Delete a company
// @Description  Only the creating user may delete a company
// @Tags         companies
// @Param        id path string true "Company ID (UUID)"
// @Success      204 "No Content"
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// formPhotos collects the uploaded photo files from the multipart form.
// A request without files is valid and yields an empty slice.
func formPhotos(c *gin.Context) ([]service.PhotoUpload, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, true
		}
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid multipart form")
		return nil, false
	}

	files := form.File[photoFormField]
	photos := make([]service.PhotoUpload, 0, len(files))
	for _, fileHeader := range files {
		f, err := fileHeader.Open()
		if err != nil {
			closePhotos(photos)
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded file")
			return nil, false
		}
		photos = append(photos, service.PhotoUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	return photos, true
}

func closePhotos(photos []service.PhotoUpload) {
	for _, p := range photos {
		if closer, ok := p.Content.(multipart.File); ok {
			closer.Close()
		}
	}
}

// bindPagination binds the page window query params
func bindPagination(c *gin.Context) (dto.PaginationParams, bool) {
	var params dto.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid pagination parameters")
		return params, false
	}
	return params, true
}

// optionalUserIDQuery parses the optional userId filter query param
func optionalUserIDQuery(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("userId")
	if raw == "" {
		return nil, true
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid user ID format")
		return nil, false
	}
	return &userID, true
}

// requireUserID reads the authenticated user id set by the auth middleware
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
