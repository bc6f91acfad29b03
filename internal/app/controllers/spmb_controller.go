package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/app/services"
	"github.com/pratama/sekolahku/internal/middleware"
	"github.com/pratama/sekolahku/internal/pkg/helpers"
	"github.com/pratama/sekolahku/internal/pkg/tabular"
)

// applicantColumns is the tabular layout of applicant exports
var applicantColumns = []tabular.Column{
	{Key: "registrationNo", Header: "No. Pendaftaran"},
	{Key: "fullName", Header: "Nama Lengkap"},
	{Key: "gender", Header: "Jenis Kelamin"},
	{Key: "dateOfBirth", Header: "Tanggal Lahir"},
	{Key: "placeOfBirth", Header: "Tempat Lahir"},
	{Key: "parentName", Header: "Nama Orang Tua"},
	{Key: "parentPhone", Header: "Telepon Orang Tua"},
	{Key: "previousSchool", Header: "Asal Sekolah"},
	{Key: "status", Header: "Status"},
	{Key: "testScore", Header: "Nilai Tes"},
}

// SPMBController handles the public admissions form and the staff
// admissions pipeline.
type SPMBController struct {
	admissionService *services.AdmissionService
	passThreshold    float64
}

// NewSPMBController creates a new SPMBController. passThreshold is the
// configured score bound applied when the ranking request names none.
func NewSPMBController(admissionService *services.AdmissionService, passThreshold float64) *SPMBController {
	if passThreshold <= 0 {
		passThreshold = services.DefaultPassThreshold
	}
	return &SPMBController{
		admissionService: admissionService,
		passThreshold:    passThreshold,
	}
}

// Register handles a public admissions submission
// @Summary Register a new applicant
// @Description Accepts the public admissions form with optional document uploads and returns the issued registration number
// @Tags spmb
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Applicant full name"
// @Param gender formData string true "MALE or FEMALE"
// @Param dateOfBirth formData string true "Date of birth (YYYY-MM-DD)"
// @Param placeOfBirth formData string true "Place of birth"
// @Param address formData string true "Home address"
// @Param parentName formData string true "Parent or guardian name"
// @Param parentPhone formData string true "Parent phone number"
// @Param parentEmail formData string false "Parent email"
// @Param previousSchool formData string false "Previous school"
// @Param photo formData file false "Applicant photo (image, max 2MB)"
// @Param birthCertificate formData file false "Birth certificate (image/PDF, max 2MB)"
// @Param familyCard formData file false "Family card (image/PDF, max 2MB)"
// @Success 201 {object} dto.APIResponse{data=dto.SPMBRegisterResult} "Applicant registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid form data or registration closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /spmb/register [post]
func (c *SPMBController) Register(ctx *gin.Context) {
	var req dto.SPMBRegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	files := &services.SPMBFiles{}
	if fh, err := ctx.FormFile("photo"); err == nil {
		files.Photo = fh
	}
	if fh, err := ctx.FormFile("birthCertificate"); err == nil {
		files.BirthCertificate = fh
	}
	if fh, err := ctx.FormFile("familyCard"); err == nil {
		files.FamilyCard = fh
	}

	result, err := c.admissionService.Register(ctx.Request.Context(), &req, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// ListApplicants retrieves a page of applicants
// @Summary List applicants
// @Description Retrieves a paginated applicant list, filterable by status, academic year and name or registration number
// @Tags spmb
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by pipeline status"
// @Param academicYearId query int false "Filter by academic year"
// @Param search query string false "Search by name or registration number"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Applicants retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /spmb/applicants [get]
func (c *SPMBController) ListApplicants(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.ApplicantFilter{Page: page, PageSize: size}

	if status := ctx.Query("status"); status != "" {
		if !models.ApplicantStatus(status).IsValid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown applicant status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Status = &status
	}
	if yearStr := ctx.Query("academicYearId"); yearStr != "" {
		yearID, err := strconv.ParseInt(yearStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Academic year ID must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.AcademicYearID = &yearID
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}

	applicants, pagination, err := c.admissionService.ListApplicants(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      applicants,
		Pagination: pagination,
	}))
}

// GetApplicant retrieves one applicant
// @Summary Get applicant by ID
// @Tags spmb
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant ID"
// @Success 200 {object} dto.APIResponse{data=models.Applicant} "Applicant retrieved"
// @Failure 404 {object} dto.ErrorResponse "Applicant not found"
// @Router /spmb/applicants/{id} [get]
func (c *SPMBController) GetApplicant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicant ID")
	if !ok {
		return
	}

	applicant, err := c.admissionService.GetApplicant(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(applicant))
}

// UpdateStatus transitions an applicant between pipeline states
// @Summary Update applicant status
// @Tags spmb
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Applicant not found"
// @Router /spmb/applicants/{id}/status [patch]
func (c *SPMBController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicant ID")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.admissionService.UpdateStatus(ctx.Request.Context(), id, models.ApplicantStatus(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"id": id, "status": req.Status}))
}

// UpdateScore records an applicant's entrance test score
// @Summary Update applicant test score
// @Tags spmb
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Applicant ID"
// @Param request body dto.UpdateScoreRequest true "Test score (0-100)"
// @Success 200 {object} dto.APIResponse "Score recorded"
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Failure 404 {object} dto.ErrorResponse "Applicant not found"
// @Router /spmb/applicants/{id}/score [patch]
func (c *SPMBController) UpdateScore(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "applicant ID")
	if !ok {
		return
	}

	var req dto.UpdateScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.admissionService.UpdateScore(ctx.Request.Context(), id, req.TestScore); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"id": id, "testScore": req.TestScore}))
}

// Ranking produces the admissions ranking of the active academic year
// @Summary Admissions ranking
// @Description Ranks scored applicants of the active academic year by test score, highest first
// @Tags spmb
// @Produce json
// @Security BearerAuth
// @Param threshold query number false "Pass threshold (default 70)"
// @Success 200 {object} dto.APIResponse{data=[]dto.RankedApplicant} "Ranking retrieved"
// @Failure 400 {object} dto.ErrorResponse "No active academic year"
// @Router /spmb/ranking [get]
func (c *SPMBController) Ranking(ctx *gin.Context) {
	threshold := c.passThreshold
	if raw := ctx.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 100 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Threshold must be a number between 0 and 100")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		threshold = parsed
	}

	ranking, err := c.admissionService.Ranking(ctx.Request.Context(), threshold)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ranking))
}

// Export downloads the active year's applicants as a spreadsheet, PDF or CSV
// @Summary Export applicants
// @Tags spmb
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "xlsx, pdf or csv (default xlsx)"
// @Success 200 {file} file "Exported document"
// @Failure 400 {object} dto.ErrorResponse "Unknown format"
// @Router /spmb/applicants/export [get]
func (c *SPMBController) Export(ctx *gin.Context) {
	applicants, err := c.admissionService.ActiveYearApplicants(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows := applicantExportRows(applicants)
	writeTabularExport(ctx, "data_pendaftar", rows, applicantColumns, "Data Pendaftar SPMB")
}

func applicantExportRows(applicants []*models.Applicant) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(applicants))
	for _, a := range applicants {
		row := map[string]interface{}{
			"registrationNo": a.RegistrationNo,
			"fullName":       a.FullName,
			"gender":         string(a.Gender),
			"dateOfBirth":    a.DateOfBirth,
			"placeOfBirth":   a.PlaceOfBirth,
			"parentName":     a.ParentName,
			"parentPhone":    a.ParentPhone,
			"status":         string(a.Status),
		}
		if a.PreviousSchool != nil {
			row["previousSchool"] = *a.PreviousSchool
		}
		if a.TestScore != nil {
			row["testScore"] = *a.TestScore
		}
		rows = append(rows, row)
	}
	return rows
}

// writeTabularExport renders rows in the requested format and sets the
// download headers. Shared by the applicant and student export endpoints.
func writeTabularExport(ctx *gin.Context, base string, rows []map[string]interface{}, cols []tabular.Column, pdfTitle string) {
	format := ctx.DefaultQuery("format", "xlsx")

	switch format {
	case "xlsx":
		content, err := tabular.ExportExcel(rows, cols)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		setDownloadHeaders(ctx, tabular.ExportFilename(base, "xlsx"))
		ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
	case "pdf":
		content, err := tabular.ExportPDF(rows, cols, pdfTitle)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		setDownloadHeaders(ctx, tabular.ExportFilename(base, "pdf"))
		ctx.Data(http.StatusOK, "application/pdf", content)
	case "csv":
		content := tabular.ExportCSV(rows, cols)
		setDownloadHeaders(ctx, tabular.ExportFilename(base, "csv"))
		ctx.Data(http.StatusOK, "text/csv", []byte(content))
	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Format must be xlsx, pdf or csv")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	}
}

func setDownloadHeaders(ctx *gin.Context, filename string) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// parseIDParam reads the :id path parameter shared by the staff endpoints
func parseIDParam(ctx *gin.Context, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label).
			WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
