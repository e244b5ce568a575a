package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
	"github.com/nhle/web3hub/internal/prefs"
	"github.com/nhle/web3hub/internal/producer"
	"github.com/nhle/web3hub/internal/router"
	"github.com/nhle/web3hub/internal/session"
)

// AlertClicker opens the target of a clicked alert.
type AlertClicker interface {
	HandleAlertClick(ctx context.Context, id string) error
}

// Deps holds the components the API serves.
type Deps struct {
	Repo     *notify.Repository
	Prefs    *prefs.Store
	Producer *producer.Producer
	Gate     *session.Gate
	Clicker  AlertClicker
	Logger   *zap.Logger
}

type handler struct {
	Deps
}

// NewRouter builds the gin engine for the local API.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	h := &handler{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(loggedIn(d.Gate))
	{
		notifications := api.Group("/notifications")
		{
			notifications.GET("", h.listNotifications)
			notifications.DELETE("/:id", h.deleteNotification)
			notifications.POST("", adminOnly(d.Gate), h.createNotification)
		}

		api.GET("/preferences", h.getPreferences)
		api.PUT("/preferences", h.putPreferences)

		api.POST("/alerts/:id/click", h.clickAlert)
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

// loggedIn accepts any HTTP basic credentials the gate logs in.
func loggedIn(gate *session.Gate) gin.HandlerFunc {
	return requireState(gate, session.State.LoggedIn, "credentials required")
}

// adminOnly accepts HTTP basic credentials that the gate recognizes as
// the admin identity.
func adminOnly(gate *session.Gate) gin.HandlerFunc {
	return requireState(gate, func(st session.State) bool {
		return st == session.LoggedInAdmin
	}, "admin credentials required")
}

// requireState checks credentials with Gate.Check, so requests never
// change the interactive session.
func requireState(gate *session.Gate, allowed func(session.State) bool, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, secret, ok := c.Request.BasicAuth()
		if !ok || gate == nil || !allowed(gate.Check(identity, secret)) {
			c.Header("WWW-Authenticate", `Basic realm="web3hub"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

func (h *handler) listNotifications(c *gin.Context) {
	if err := h.Repo.Reload(c.Request.Context()); err != nil {
		h.Logger.Warn("reloading notifications failed", zap.Error(err))
	}

	var filter *model.Category
	if raw := c.Query("type"); raw != "" {
		cat, ok := model.ParseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown notification type " + raw})
			return
		}
		filter = &cat
	}

	c.JSON(http.StatusOK, router.Visible(h.Repo.List(), filter))
}

func (h *handler) deleteNotification(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) createNotification(c *gin.Context) {
	draft := producer.DefaultDraft()
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.Producer.Submit(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, producer.ErrInvalidDraft) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if n.ID == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Warn("notification kept in memory only", zap.String("id", n.ID), zap.Error(err))
	}
	c.JSON(http.StatusCreated, n)
}

func (h *handler) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.Prefs.Read(c.Request.Context()))
}

// putPreferences applies a partial update: omitted fields keep their
// current values.
func (h *handler) putPreferences(c *gin.Context) {
	p := h.Prefs.Read(c.Request.Context())
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Theme != model.ThemeLight && p.Theme != model.ThemeDark {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown theme " + string(p.Theme)})
		return
	}
	if err := h.Prefs.Save(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Prefs.Current())
}

func (h *handler) clickAlert(c *gin.Context) {
	if h.Clicker == nil {
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.Clicker.HandleAlertClick(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
