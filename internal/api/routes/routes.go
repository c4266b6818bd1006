package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AtharvaKhot17/QuickHireAI/internal/api/handlers"
	"github.com/AtharvaKhot17/QuickHireAI/internal/api/middleware"
	"github.com/AtharvaKhot17/QuickHireAI/internal/auth"
)

type Deps struct {
	Session *handlers.SessionHandler

	// company dashboard; registered only when all three are set
	Company   *handlers.CompanyHandler
	Interview *handlers.InterviewHandler
	Tokens    *auth.TokenIssuer

	CORSOrigins []string
}

const defaultOrigin = "http://localhost:5173"

func RegisterRoutes(r *gin.Engine, d Deps) {
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{defaultOrigin}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api/interviews")
	api.POST("/start", d.Session.Start)
	api.POST("", d.Session.Create)
	api.POST("/evaluate-answer", d.Session.EvaluateAnswer)
	api.POST("/finalize", d.Session.Finalize)
	api.POST("/final-evaluation", d.Session.Finalize)
	api.GET("/:code", d.Session.Get)
	api.GET("/:code/questions", d.Session.Questions)
	api.POST("/:code/answer", d.Session.Submit)
	api.POST("/:code/answer/audio", d.Session.SubmitAudio)
	api.POST("/:code/end", d.Session.End)
	api.GET("/:code/results", d.Session.End)

	if d.Company == nil || d.Interview == nil || d.Tokens == nil {
		return
	}

	company := r.Group("/api/company")
	company.POST("/register", d.Company.Register)
	company.POST("/login", d.Company.Login)

	// Protected routes (JWT)
	auth := company.Group("/")
	auth.Use(middleware.JWTAuth(d.Tokens), middleware.RequireCompany())

	auth.GET("/me", d.Company.Me)

	auth.POST("/interviews", d.Interview.Create)
	auth.GET("/interviews", d.Interview.List)
	auth.GET("/interviews/:id", d.Interview.Get)
	auth.PUT("/interviews/:id", d.Interview.Update)
	auth.DELETE("/interviews/:id", d.Interview.Delete)

	auth.POST("/interviews/:id/candidates", d.Interview.UploadCandidates)
	auth.GET("/interviews/:id/candidates", d.Interview.ListCandidates)
	auth.GET("/interviews/:id/reports", d.Interview.ListReports)

	auth.GET("/sessions/:code/transcript", d.Interview.Transcript)
}
