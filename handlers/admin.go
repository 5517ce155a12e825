package handlers

import (
	"bytes"
	"log"
	"net/http"

	"gallery/auth"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type ResetCountRequest struct {
	Passcode string `json:"passcode"`
	DeviceID string `json:"deviceId"`
}

func (a *API) AdminLogin(c *gin.Context) {
	r := LoginRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	token, err := a.Sessions.Login(r.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ResetUserCount is gated by the shared passcode, not by an admin token
func (a *API) ResetUserCount(c *gin.Context) {
	r := ResetCountRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.Quota.ResetCount(r.Passcode, r.DeviceID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func attachment(c *gin.Context, fileName string) {
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
}

func (a *API) DownloadPhotos(c *gin.Context, admin *auth.Principal) {
	c.Header("Content-Type", "application/zip")
	attachment(c, "photos.zip")
	result, err := a.Lifecycle.ExportPhotosArchive(c.Request.Context(), c.Writer)
	if err != nil {
		if !c.Writer.Written() {
			c.Header("Content-Disposition", "")
			c.Header("Content-Type", "")
			abortWithError(c, err)
			return
		}
		log.Printf("Download: photo archive interrupted: %v", err)
		return
	}
	log.Printf("Download: photo archive with %d photos, %d skipped", result.Included, len(result.Skipped))
}

func (a *API) DownloadWishesCSV(c *gin.Context, admin *auth.Principal) {
	buf := bytes.Buffer{}
	if err := a.Lifecycle.ExportWishesCSV(c.Request.Context(), &buf); err != nil {
		abortWithError(c, err)
		return
	}
	attachment(c, "wedding-guestbook.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (a *API) DownloadWishesPDF(c *gin.Context, admin *auth.Principal) {
	buf := bytes.Buffer{}
	if err := a.Lifecycle.ExportWishesPDF(c.Request.Context(), &buf); err != nil {
		abortWithError(c, err)
		return
	}
	attachment(c, "wedding-guestbook.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
