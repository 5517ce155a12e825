package handlers

import (
	"errors"
	"log"
	"net/http"

	"gallery/auth"
	"gallery/lifecycle"
	"gallery/models"
	"gallery/pagination"
	"gallery/quota"
	"gallery/storage"
	"gallery/submission"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

type MultiResponse struct {
	Error   string   `json:"error"`
	Deleted int      `json:"deleted"`
	Failed  []string `json:"failed"`
}

var (
	// Predefined errors
	OKResponse           = Response{}
	NotFoundResponse     = Response{"Not found"}
	UploadErrorResponse  = Response{"upload failed"}
	StorageErrorResponse = Response{"storage error"}
)

// API holds what the handlers need, see Register for the routes
type API struct {
	Submissions *submission.Service
	Pages       *pagination.Engine
	Lifecycle   *lifecycle.Manager
	Sessions    *auth.Sessions
	Quota       *quota.Tracker
	Files       *storage.DiskStorage // only with the disk backend
}

// abortWithError replies with the status matching the error, internal details are only logged
func abortWithError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		authErr       *models.AuthError
		uploadErr     *models.UploadError
	)
	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, Response{validationErr.Reason})
	case errors.As(err, &authErr):
		status := http.StatusUnauthorized
		if authErr.Forbidden {
			status = http.StatusForbidden
		}
		c.AbortWithStatusJSON(status, Response{authErr.Reason})
	case errors.Is(err, models.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, NotFoundResponse)
	case errors.Is(err, lifecycle.ErrNothingToExport):
		c.AbortWithStatusJSON(http.StatusNotFound, Response{err.Error()})
	case errors.As(err, &uploadErr):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, UploadErrorResponse)
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, StorageErrorResponse)
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{err.Error()})
}
