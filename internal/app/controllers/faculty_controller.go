package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/school/internal/app/models/dto"
	"github.com/yigit/school/internal/app/services"
	"github.com/yigit/school/internal/middleware"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// CreateFaculty handles faculty creation
// @Summary Create a new faculty
// @Description Creates a new faculty with the provided name and color
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=models.Faculty} "Faculty created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx.Request.Context(), req.ToModel(0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, faculty)
}

// GetFacultyByID retrieves a faculty by ID
// @Summary Get faculty details
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, faculty)
}

// GetAllFaculties retrieves all faculties
// @Summary Get all faculties
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculties retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculties [get]
func (c *FacultyController) GetAllFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.GetAllFaculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, faculties)
}

// UpdateFaculty replaces an existing faculty
// @Summary Update a faculty
// @Description Replaces name and color of the faculty with the given ID
// @Tags faculties
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Param request body dto.FacultyRequest true "Updated faculty information"
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.FacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.UpdateFaculty(ctx.Request.Context(), req.ToModel(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, faculty)
}

// DeleteFaculty deletes a faculty
// @Summary Delete a faculty
// @Description Deletes the faculty; unknown IDs succeed. Its students lose their faculty.
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Faculty deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Router /faculties/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, "Faculty deleted successfully")
}

// FilterByColor lists faculties of exactly the given color
// @Summary Filter faculties by color
// @Tags faculties
// @Produce json
// @Param color query string true "Color, case-sensitive"
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty}
// @Failure 400 {object} dto.ErrorResponse "Missing color"
// @Router /faculties/filter [get]
func (c *FacultyController) FilterByColor(ctx *gin.Context) {
	color, ok := ctx.GetQuery("color")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, "query parameter color is required").WithField("color")))
		return
	}

	faculties, err := c.facultyService.FilterByColor(ctx.Request.Context(), color)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, faculties)
}

// SearchFaculties finds faculties by name or color, ignoring case
// @Summary Search faculties by name or color
// @Tags faculties
// @Produce json
// @Param term query string true "Name or color"
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty}
// @Failure 400 {object} dto.ErrorResponse "Missing term"
// @Router /faculties/search [get]
func (c *FacultyController) SearchFaculties(ctx *gin.Context) {
	term, ok := ctx.GetQuery("term")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, "query parameter term is required").WithField("term")))
		return
	}

	faculties, err := c.facultyService.FindByNameOrColor(ctx.Request.Context(), term)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, faculties)
}

// GetFacultyStudents lists the students of a faculty
// @Summary List students of a faculty
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculties/{id}/students [get]
func (c *FacultyController) GetFacultyStudents(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.facultyService.GetStudentsOfFaculty(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, students)
}

// GetLongestName returns the longest faculty name
// @Summary Longest faculty name
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LongestNameResponse}
// @Router /faculties/longest-name [get]
func (c *FacultyController) GetLongestName(ctx *gin.Context) {
	name, err := c.facultyService.LongestFacultyName(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.LongestNameResponse{Name: name})
}
