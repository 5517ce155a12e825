package auth

import (
	"errors"
	"net/http"
	"strings"

	"gallery/models"

	"github.com/gin-gonic/gin"
)

// Admin is authenticated before the handler is called
type HandlerFunc func(c *gin.Context, admin *Principal)

// Router is a wrapper class that adds bearer token checks to admin routes
type Router struct {
	Base     gin.IRoutes
	Sessions *Sessions
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	admin, err := cr.Sessions.Authenticate(BearerToken(c.GetHeader("Authorization")))
	if err != nil {
		status := http.StatusUnauthorized
		var authErr *models.AuthError
		if errors.As(err, &authErr) && authErr.Forbidden {
			status = http.StatusForbidden
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}
	handler(c, admin)
}

// BearerToken extracts the token from an `Authorization: Bearer <token>` header
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
