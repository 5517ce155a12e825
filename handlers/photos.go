package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"gallery/auth"
	"gallery/models"
	"gallery/submission"

	"github.com/gin-gonic/gin"
)

type PhotoListRequest struct {
	GuestID string `form:"guestId"`
}

type DeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// uploadFile accepts the file under "photo" or, as older clients send it, "image"
func uploadFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("photo")
	if err == http.ErrMissingFile {
		file, err = c.FormFile("image")
	}
	return file, err
}

// deviceID prefers the id sent by the client, then the one remembered in the guest cookie
func deviceID(c *gin.Context, sent ...string) string {
	for _, id := range sent {
		if id != "" {
			return id
		}
	}
	return auth.LoadGuestSession(c).DeviceID()
}

func (a *API) PhotoUpload(c *gin.Context) {
	file, err := uploadFile(c)
	if err != nil {
		abortWithError(c, models.Invalid("No file uploaded"))
		return
	}
	reported := 0
	if v := c.PostForm("uploadedCount"); v != "" {
		if reported, err = strconv.Atoi(v); err != nil {
			abortWithError(c, models.Invalid("uploadedCount must be a number"))
			return
		}
	}
	body, err := file.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer body.Close()

	photo, err := a.Submissions.SubmitPhoto(c.Request.Context(), submission.PhotoSubmission{
		DeviceID:      deviceID(c, c.PostForm("deviceId"), c.PostForm("guestId")),
		ReportedCount: reported,
		FileName:      file.Filename,
		MimeType:      file.Header.Get("Content-Type"),
		Body:          body,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

func (a *API) PhotoList(c *gin.Context) {
	r := PhotoListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		badRequest(c, err)
		return
	}
	photos, err := a.Pages.ListPhotos(c.Request.Context(), r.GuestID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (a *API) AdminPhotoList(c *gin.Context, admin *auth.Principal) {
	a.PhotoList(c)
}

func (a *API) AdminPhotoDelete(c *gin.Context, admin *auth.Principal) {
	if err := a.Lifecycle.DeletePhoto(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func (a *API) AdminPhotosDelete(c *gin.Context, admin *auth.Principal) {
	r := DeleteRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	result := a.Lifecycle.DeletePhotos(c.Request.Context(), r.IDs)
	c.JSON(http.StatusOK, MultiResponse{Deleted: result.DeletedCount, Failed: result.FailedIDs})
}
