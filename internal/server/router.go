package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Skufu/GoCardio/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// NewRouter wires the page, the JSON API and the health probes. db may be
// nil when the database mirror is disabled.
func NewRouter(app *App, db HealthChecker) *gin.Engine {
	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(app.logger),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/", app.showForm)
	router.POST("/", app.submitForm)

	api := router.Group("/api")
	{
		api.POST("/predict", app.apiPredict)
		api.POST("/consultations", app.apiSaveConsultation)
		api.POST("/session/connect", app.apiConnect)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
	})

	return router
}

func (a *App) showForm(c *gin.Context) {
	view := a.Render(c.Request.Context(), DefaultFormState(), ActionLoad)
	c.HTML(http.StatusOK, "index.html", view)
}

func (a *App) submitForm(c *gin.Context) {
	state := DefaultFormState()
	if err := c.ShouldBind(&state); err != nil {
		status := http.StatusBadRequest
		if isValidationError(err) {
			status = http.StatusUnprocessableEntity
		}
		// The sidebar is still checked when the clinical fields fail.
		var creds session.Credentials
		if bindErr := c.ShouldBindWith(&creds, binding.Form); bindErr == nil {
			state.ClinicianName = creds.Name
			if creds.Facility != "" {
				state.Facility = creds.Facility
			}
		}
		view := baseView(state)
		if parseAction(c.PostForm("action")) == ActionConnect {
			view.Sidebar = a.connect(creds)
		}
		for _, msg := range describeValidation(err) {
			view.fail(msg)
		}
		c.HTML(status, "index.html", view)
		return
	}

	view := a.Render(c.Request.Context(), state, parseAction(state.Action))
	c.HTML(http.StatusOK, "index.html", view)
}

// bindJSON writes the error response itself and reports whether binding
// succeeded.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if isValidationError(err) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": describeValidation(err),
		})
		return false
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
	return false
}
