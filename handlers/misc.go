package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) FileServe(c *gin.Context) {
	a.Files.Serve(c.Param("path"), c.Request, c.Writer)
}

func (a *API) Health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if a.Files != nil {
		if free, err := a.Files.FreeSpace(); err == nil {
			status["freeSpace"] = free
		}
	}
	c.JSON(http.StatusOK, status)
}
