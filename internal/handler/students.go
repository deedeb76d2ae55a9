package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rollcall/internal/students"
)

type studentRequest struct {
	Name    text `json:"name"`
	RollNum text `json:"rollnum"`
	Branch  text `json:"branch"`
	Year    text `json:"year"`
}

type studentUpdate struct {
	RollNum text  `json:"rollnum"`
	Name    *text `json:"name"`
	Branch  *text `json:"branch"`
	Year    *text `json:"year"`
}

// CreateStudent handles POST /createStudent.
func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.students.Create(c.Request.Context(), string(req.Name), string(req.RollNum), string(req.Branch), string(req.Year))
	if err != nil {
		respondError(c, "creating student", err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// DeleteStudent handles DELETE /deleteStudent/:rollnum.
func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("rollnum")); err != nil {
		respondError(c, "deleting student", err)
		return
	}
	c.String(http.StatusOK, "Student deleted successfully.")
}

// UpdateStudent handles PUT /updateStudent. Omitted fields keep their stored values.
func (h *Handler) UpdateStudent(c *gin.Context) {
	var req studentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.students.Update(c.Request.Context(), string(req.RollNum), students.Changes{
		Name:   req.Name.ptr(),
		Branch: req.Branch.ptr(),
		Year:   req.Year.ptr(),
	})
	if err != nil {
		respondError(c, "updating student", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ListStudents handles GET /getStudentsData.
func (h *Handler) ListStudents(c *gin.Context) {
	list, err := h.students.List(c.Request.Context())
	if err != nil {
		respondError(c, "fetching student data", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
