package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rollcall/internal/accounts"
	"rollcall/internal/apperror"
	"rollcall/internal/attendance"
	"rollcall/internal/students"
)

// Checker reports whether a backing service is reachable.
type Checker interface {
	Healthy(ctx context.Context) bool
}

// Handler serves the HTTP API.
type Handler struct {
	accounts *accounts.Service
	students *students.Service
	ledger   *attendance.Service
	db       Checker
	cache    Checker
}

// New wires the HTTP handlers to their services and health checkers.
func New(acc *accounts.Service, st *students.Service, ledger *attendance.Service, db, cache Checker) *Handler {
	return &Handler{accounts: acc, students: st, ledger: ledger, db: db, cache: cache}
}

// Healthz reports dependency reachability. Redis is optional, so only the database affects the status code.
func (h *Handler) Healthz(c *gin.Context) {
	ctx := c.Request.Context()
	dbHealthy := h.db != nil && h.db.Healthy(ctx)
	redisHealthy := h.cache != nil && h.cache.Healthy(ctx)
	status := http.StatusOK
	if !dbHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
}

// respondError renders expected failures with their own status and echoes anything else as a 500.
func respondError(c *gin.Context, action string, err error) {
	if appErr, ok := apperror.As(err); ok && appErr.Kind != apperror.Internal {
		c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Message})
		return
	}
	log.Printf("%s: %v", action, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error " + action + ": " + err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}

// text accepts a JSON string or number, since clients send year both ways.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

func (t *text) ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}
