package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "taskapi/internal/adapter/http/helper"
	"taskapi/pkg/tracing"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	driver string
}

func NewHealthHandler(db Pinger, driver string) *HealthHandler {
	return &HealthHandler{db: db, driver: driver}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	err := tracing.SpanWrapper(ctx, "db.ping", []attribute.KeyValue{attribute.String("db.system", h.driver)}, h.db.PingContext)

	if err != nil {
		SendError(c, http.StatusServiceUnavailable, "UNAVAILABLE", nil, gin.H{"database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
