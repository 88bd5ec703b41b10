package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edustack/schoolhub/internal/response"
	"github.com/edustack/schoolhub/internal/service"
	"github.com/edustack/schoolhub/internal/validator"
)

// ClassroomHandler handles classroom CRUD and roster membership endpoints.
type ClassroomHandler struct {
	classroomService *service.ClassroomService
}

// NewClassroomHandler creates a new ClassroomHandler.
func NewClassroomHandler(classroomService *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService}
}

// ListClassrooms godoc
// GET /api/classrooms
// Lists all classrooms with course, teacher and roster resolved.
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	classrooms, err := h.classroomService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classrooms": classrooms})
}

// ClassroomRequest is the payload for creating or updating a classroom.
// Course and teacher are optional references.
type ClassroomRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	CourseID  *int   `json:"course_id"`
	TeacherID *int   `json:"teacher_id"`
}

// CreateClassroom godoc
// POST /api/classrooms
// Creates a new classroom with an empty roster.
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req ClassroomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classroom, err := h.classroomService.Create(c.Request.Context(), req.Name, req.CourseID, req.TeacherID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"classroom": classroom})
}

// UpdateClassroom godoc
// PUT /api/classrooms/:id
// Updates a classroom's name, course and teacher.
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req ClassroomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classroom, err := h.classroomService.Update(c.Request.Context(), id, req.Name, req.CourseID, req.TeacherID)
	if err != nil {
		if errors.Is(err, service.ErrClassroomNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classroom": classroom})
}

// DeleteClassroom godoc
// DELETE /api/classrooms/:id
// Deletes a classroom and, transitively, its roster memberships.
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classroomService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "classroom deleted successfully"})
}

// StudentRequest carries the student reference for roster mutations.
type StudentRequest struct {
	StudentID int `json:"studentId" binding:"required"`
}

// AddStudent godoc
// POST /api/classrooms/:id/add-student
// Enrolls a student into the classroom's roster.
func (h *ClassroomHandler) AddStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classroomService.AddStudent(c.Request.Context(), id, req.StudentID); err != nil {
		switch {
		case errors.Is(err, service.ErrClassroomNotFound), errors.Is(err, service.ErrStudentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotAStudent):
			response.Fail(c, http.StatusBadRequest, response.ErrNotAStudent)
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student added successfully"})
}

// RemoveStudent godoc
// POST /api/classrooms/:id/remove-student
// Removes a student from the roster. Removing a non-member is a defined
// no-op and still returns 200, so a repeated removal never errors.
func (h *ClassroomHandler) RemoveStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classroomService.RemoveStudent(c.Request.Context(), id, req.StudentID); err != nil {
		if errors.Is(err, service.ErrClassroomNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "student removed successfully"})
}
