package attendance

import (
	"fmt"

	"rollcall/internal/apperror"
)

// Status is the attendance state of a student on a day.
type Status string

const (
	Present Status = "Present"
	Absent  Status = "Absent"
)

// ParseStatus accepts Present or Absent; an empty value means Absent.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Present:
		return Present, nil
	case Absent, "":
		return Absent, nil
	default:
		return "", fmt.Errorf("unknown attendance status %q", s)
	}
}

// Record is one student's attendance on one date. (RollNum, Date) identifies it.
type Record struct {
	RollNum string `json:"rollnum"`
	Date    string `json:"date"`
	Status  Status `json:"attendance"`
	Name    string `json:"name"`
	Branch  string `json:"branch"`
	Year    string `json:"year"`
	// Version counts writes to the row; the first insert is 1.
	Version int64 `json:"-"`
}

func (r Record) validate(i int) (Record, error) {
	if r.RollNum == "" || r.Date == "" {
		return Record{}, apperror.NewValidation(fmt.Sprintf("Record %d: rollnum and date are required.", i))
	}
	st, err := ParseStatus(string(r.Status))
	if err != nil {
		return Record{}, apperror.NewValidation(fmt.Sprintf("Record %d: attendance must be Present or Absent.", i))
	}
	r.Status = st
	return r, nil
}

// Summary is the per-date roll-up of attendance.
type Summary struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}
