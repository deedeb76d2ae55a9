package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rollcall/internal/attendance"
)

// attendanceInput accepts the status under either "attendance" or "status".
type attendanceInput struct {
	RollNum    text    `json:"rollnum"`
	Date       text    `json:"date"`
	Attendance *string `json:"attendance"`
	Status     *string `json:"status"`
	Name       text    `json:"name"`
	Branch     text    `json:"branch"`
	Year       text    `json:"year"`
}

func (in attendanceInput) record() attendance.Record {
	var status string
	switch {
	case in.Attendance != nil:
		status = *in.Attendance
	case in.Status != nil:
		status = *in.Status
	}
	return attendance.Record{
		RollNum: string(in.RollNum),
		Date:    string(in.Date),
		Status:  attendance.Status(status),
		Name:    string(in.Name),
		Branch:  string(in.Branch),
		Year:    string(in.Year),
	}
}

// AddAttendance handles POST /addAttendance.
func (h *Handler) AddAttendance(c *gin.Context) {
	var req []attendanceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	records := make([]attendance.Record, 0, len(req))
	for _, in := range req {
		records = append(records, in.record())
	}
	if err := h.ledger.Submit(c.Request.Context(), records); err != nil {
		respondError(c, "updating attendance", err)
		return
	}
	c.String(http.StatusOK, "Attendance added/updated successfully!")
}

// StudentAttendance handles GET /studentAttendance?date=&rollnum=.
func (h *Handler) StudentAttendance(c *gin.Context) {
	status, err := h.ledger.GetForDate(c.Request.Context(), c.Query("rollnum"), c.Query("date"))
	if err != nil {
		respondError(c, "fetching attendance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": status})
}

// AttendanceSummary handles GET /attendanceSummary?date=.
func (h *Handler) AttendanceSummary(c *gin.Context) {
	sum, err := h.ledger.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, "fetching attendance summary", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
