package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/school/internal/app/models/dto"
	"github.com/yigit/school/internal/app/services"
	"github.com/yigit/school/internal/middleware"
	"github.com/yigit/school/internal/pkg/apperrors"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown faculty"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), req.ToModel(0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, student)
}

// GetStudentByID retrieves a student by ID
// @Summary Get student details
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, student)
}

// GetAllStudents retrieves all students
// @Summary Get all students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, students)
}

// UpdateStudent replaces an existing student
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.StudentRequest true "Updated student information"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown faculty"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), req.ToModel(id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, student)
}

// DeleteStudent deletes a student
// @Summary Delete a student
// @Description Deletes the student and its avatar row; unknown IDs succeed
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, "Student deleted successfully")
}

// FilterByAge lists students of exactly the given age
// @Summary Filter students by age
// @Tags students
// @Produce json
// @Param age query int true "Age, must be positive"
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Failure 400 {object} dto.ErrorResponse "Missing or non-positive age"
// @Router /students/filter [get]
func (c *StudentController) FilterByAge(ctx *gin.Context) {
	age, err := parseIntQuery(ctx, "age")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if age <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("age must be positive"))
		return
	}

	students, err := c.studentService.FilterByAge(ctx.Request.Context(), age)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, students)
}

// FilterByAgeRange lists students aged within [min, max]
// @Summary Filter students by age range
// @Tags students
// @Produce json
// @Param min query int true "Minimum age, inclusive"
// @Param max query int true "Maximum age, inclusive"
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Failure 400 {object} dto.ErrorResponse "Invalid range"
// @Router /students/age-between [get]
func (c *StudentController) FilterByAgeRange(ctx *gin.Context) {
	minAge, err := parseIntQuery(ctx, "min")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	maxAge, err := parseIntQuery(ctx, "max")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.studentService.FilterByAgeRange(ctx.Request.Context(), minAge, maxAge)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, students)
}

// GetStudentFaculty returns the faculty of a student
// @Summary Faculty of a student
// @Description faculty is null when the student has no faculty
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentFacultyResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/faculty [get]
func (c *StudentController) GetStudentFaculty(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	faculty, err := c.studentService.GetFacultyOfStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.StudentFacultyResponse{StudentID: id, Faculty: faculty})
}

// CountStudents returns the number of students
// @Summary Count students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /students/count [get]
func (c *StudentController) CountStudents(ctx *gin.Context) {
	count, err := c.studentService.CountStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.CountResponse{Count: count})
}

// GetAverageAge returns the mean student age
// @Summary Average student age
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AverageAgeResponse}
// @Router /students/average-age [get]
func (c *StudentController) GetAverageAge(ctx *gin.Context) {
	avg, err := c.studentService.AverageAge(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.AverageAgeResponse{AverageAge: avg})
}

// GetLastFive returns the five most recently created students
// @Summary Last five students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /students/last-five [get]
func (c *StudentController) GetLastFive(ctx *gin.Context) {
	students, err := c.studentService.LastFive(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, students)
}

// GetNamesStartingWithA returns upper-cased names starting with "A"
// @Summary Names starting with A
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /students/names-starting-with-a [get]
func (c *StudentController) GetNamesStartingWithA(ctx *gin.Context) {
	names, err := c.studentService.NamesStartingWithA(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, names)
}

// PrintParallel prints all student names from a worker pool in the background
// @Summary Print names concurrently
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /students/print-parallel [get]
func (c *StudentController) PrintParallel(ctx *gin.Context) {
	if err := c.studentService.PrintNamesConcurrently(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, "Printing started")
}

// PrintSynchronized prints all student names in order in the background
// @Summary Print names sequentially
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /students/print-synchronized [get]
func (c *StudentController) PrintSynchronized(ctx *gin.Context) {
	if err := c.studentService.PrintNamesSequentially(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondMessage(ctx, "Printing started")
}
