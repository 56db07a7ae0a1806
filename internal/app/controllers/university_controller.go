package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/services"
	"github.com/okaradag/unipath/internal/middleware"
)

// UniversityController handles the university catalog endpoints
type UniversityController struct {
	universityService *services.UniversityService
}

// NewUniversityController creates a new UniversityController
func NewUniversityController(universityService *services.UniversityService) *UniversityController {
	return &UniversityController{
		universityService: universityService,
	}
}

// ListUniversities lists universities with optional filters
// @Summary List universities
// @Description Retrieves universities filtered by country or name search, paginated
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Param country query string false "Filter by country"
// @Param search query string false "Search by name"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Universities retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /universities [get]
func (c *UniversityController) ListUniversities(ctx *gin.Context) {
	var req dto.UniversityFilterRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	response, err := c.universityService.List(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetUniversity retrieves a single university
// @Summary Get university by ID
// @Description Retrieves a university by its ID
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Param id path int true "University ID"
// @Success 200 {object} dto.APIResponse{data=dto.UniversityResponse} "University retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid university ID"
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /universities/{id} [get]
func (c *UniversityController) GetUniversity(ctx *gin.Context) {
	id, ok := pathID(ctx, "University ID")
	if !ok {
		return
	}

	response, err := c.universityService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// pathID parses the id path parameter, rejecting non-numeric values
func pathID(ctx *gin.Context, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label)
		errorDetail = errorDetail.WithDetails(label + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
