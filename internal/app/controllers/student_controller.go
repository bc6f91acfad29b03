package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/app/services"
	"github.com/pratama/sekolahku/internal/middleware"
	"github.com/pratama/sekolahku/internal/pkg/helpers"
	"github.com/pratama/sekolahku/internal/pkg/tabular"
)

// StudentController handles enrolled student records
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// List retrieves a page of students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name or NIS"
// @Param className query string false "Filter by class"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students retrieved"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.StudentFilter{Page: page, PageSize: size}

	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}
	if className := ctx.Query("className"); className != "" {
		filter.ClassName = &className
	}

	students, pagination, err := c.studentService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      students,
		Pagination: pagination,
	}))
}

// Get retrieves one student
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student ID")
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// Create adds a single student record
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 409 {object} dto.ErrorResponse "NIS already exists"
// @Router /students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// Update replaces a student's details
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.StudentRequest true "Student details"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "NIS already exists"
// @Router /students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student ID")
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// Delete removes a student record
// @Summary Delete student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student ID")
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"id": id}))
}

// Import bulk-inserts students from an uploaded spreadsheet
// @Summary Import students from a spreadsheet
// @Description Accepts an .xlsx or .xls file (max 10MB), inserts valid rows and reports rejected ones
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReport} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Invalid file"
// @Router /students/import [post]
func (c *StudentController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidFile, "A spreadsheet file is required").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := tabular.ValidateUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidFile, err.Error()).WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	records, err := tabular.ParseExcel(file)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidFile, "Could not read the spreadsheet").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report, err := c.studentService.ImportRows(ctx.Request.Context(), records)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// Export downloads all students as a spreadsheet, PDF or CSV
// @Summary Export students
// @Tags students
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "xlsx, pdf or csv (default xlsx)"
// @Success 200 {file} file "Exported document"
// @Failure 400 {object} dto.ErrorResponse "Unknown format"
// @Router /students/export [get]
func (c *StudentController) Export(ctx *gin.Context) {
	students, err := c.studentService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows := services.ExportRows(students)
	writeTabularExport(ctx, "data_siswa", rows, services.StudentColumns, "Data Siswa")
}
