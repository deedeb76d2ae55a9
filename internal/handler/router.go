package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rollcall/internal/auth"
	"rollcall/internal/httpmiddleware"
)

// NewRouter wires routes and middleware. Every route except signup, login, health and
// metrics sits behind the bearer token gate.
func NewRouter(h *Handler, tokens auth.Verifier, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(httpmiddleware.Metrics())
	r.Use(httpmiddleware.SecurityHeaders())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.Healthz)

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	protected := r.Group("/", auth.RequireToken(tokens))
	protected.POST("/createStudent", h.CreateStudent)
	protected.DELETE("/deleteStudent/:rollnum", h.DeleteStudent)
	protected.PUT("/updateStudent", h.UpdateStudent)
	protected.POST("/addAttendance", h.AddAttendance)
	protected.GET("/getStudentsData", h.ListStudents)
	protected.GET("/studentAttendance", h.StudentAttendance)
	protected.GET("/attendanceSummary", h.AttendanceSummary)

	return r
}
