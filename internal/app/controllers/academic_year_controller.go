package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/app/services"
	"github.com/pratama/sekolahku/internal/middleware"
)

// AcademicYearController manages enrollment periods
type AcademicYearController struct {
	yearService *services.AcademicYearService
}

// NewAcademicYearController creates a new AcademicYearController
func NewAcademicYearController(yearService *services.AcademicYearService) *AcademicYearController {
	return &AcademicYearController{yearService: yearService}
}

// List retrieves every enrollment period
// @Summary List academic years
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicYear} "Academic years retrieved"
// @Router /academic-years [get]
func (c *AcademicYearController) List(ctx *gin.Context) {
	years, err := c.yearService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(years))
}

// GetActive retrieves the period currently open for registration
// @Summary Get the active academic year
// @Tags academic-years
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Active academic year"
// @Failure 404 {object} dto.ErrorResponse "No active academic year"
// @Router /academic-years/active [get]
func (c *AcademicYearController) GetActive(ctx *gin.Context) {
	year, err := c.yearService.GetActive(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(year))
}

// Create opens a new enrollment period
// @Summary Create academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year details"
// @Success 201 {object} dto.APIResponse{data=models.AcademicYear} "Academic year created"
// @Failure 409 {object} dto.ErrorResponse "Name already exists"
// @Router /academic-years [post]
func (c *AcademicYearController) Create(ctx *gin.Context) {
	var req dto.CreateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	year, err := c.yearService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(year))
}

// Update edits the name or dates of a period
// @Summary Update academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.UpdateAcademicYearRequest true "Academic year details"
// @Success 200 {object} dto.APIResponse{data=models.AcademicYear} "Academic year updated"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id} [put]
func (c *AcademicYearController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "academic year ID")
	if !ok {
		return
	}

	var req dto.UpdateAcademicYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	year, err := c.yearService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(year))
}

// Activate marks a period as the registration target
// @Summary Activate academic year
// @Description Activates one academic year and deactivates every other in the same transaction
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse "Academic year activated"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-years/{id}/activate [put]
func (c *AcademicYearController) Activate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "academic year ID")
	if !ok {
		return
	}

	if err := c.yearService.Activate(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"id": id, "isActive": true}))
}

// Delete removes a period with no registered applicants
// @Summary Delete academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.APIResponse "Academic year deleted"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Failure 409 {object} dto.ErrorResponse "Academic year has applicants"
// @Router /academic-years/{id} [delete]
func (c *AcademicYearController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "academic year ID")
	if !ok {
		return
	}

	if err := c.yearService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"id": id}))
}
