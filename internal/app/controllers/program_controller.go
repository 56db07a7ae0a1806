package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/services"
	"github.com/okaradag/unipath/internal/middleware"
)

// ProgramController handles the study program catalog endpoints
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

// ListPrograms lists programs with optional filters
// @Summary List programs
// @Description Retrieves study programs filtered by university, degree or name search, paginated
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param universityId query int false "Filter by university ID"
// @Param degree query string false "Filter by degree level"
// @Param search query string false "Search by name"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Programs retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [get]
func (c *ProgramController) ListPrograms(ctx *gin.Context) {
	var req dto.ProgramFilterRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	response, err := c.programService.List(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetProgram retrieves a single program
// @Summary Get program by ID
// @Description Retrieves a study program with its university by ID
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProgramResponse} "Program retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	id, ok := pathID(ctx, "Program ID")
	if !ok {
		return
	}

	response, err := c.programService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
