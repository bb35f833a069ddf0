package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/iris-hq/iris-os/internal/config"
	"github.com/iris-hq/iris-os/internal/modules/model"
	"github.com/iris-hq/iris-os/internal/modules/serializer"
)

// WorkspaceAuth authenticates requests with a workspace bearer token, loads
// the workspace and stores it on the gin context. The workspace_id span
// attribute allows per-tenant trace filtering.
func WorkspaceAuth(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		if !strings.HasPrefix(raw, cfg.Root.WorkspaceKeyPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}

		var ws model.Workspace
		if err := db.WithContext(c.Request.Context()).Where(&model.Workspace{SecretKey: raw}).First(&ws).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("workspace_id", ws.ID.String()))
		}

		c.Set("workspace", &ws)
		c.Next()
	}
}

// RootAuth guards the workspace administration endpoints with the static
// root API token.
func RootAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != cfg.Root.ApiBearerToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		c.Next()
	}
}
