package handlers

import (
	"gallery/auth"
	"gallery/metrics"
	"gallery/storage"
	"gallery/utils"

	"github.com/gin-gonic/gin"
)

// Register adds every route to the router. Middlewares (sessions, cors, gzip)
// are expected to be installed already.
func (a *API) Register(router *gin.Engine) {
	// Guests
	router.POST("/upload", a.PhotoUpload)
	router.GET("/photos", a.PhotoList)
	router.GET("/wishes", a.WishList)
	router.POST("/wishes", a.WishCreate)
	router.POST("/photos/reset-user-count", a.ResetUserCount)
	// Admin
	router.POST("/admin/login", a.AdminLogin)
	adminGroup := router.Group("/admin", (&utils.CacheRouter{CacheTime: utils.CacheNoStore}).Handler())
	adminRouter := &auth.Router{Base: adminGroup, Sessions: a.Sessions}
	adminRouter.GET("/photos", a.AdminPhotoList)
	adminRouter.DELETE("/delete/:id", a.AdminPhotoDelete)
	adminRouter.POST("/photos/delete", a.AdminPhotosDelete)
	adminRouter.GET("/wishes", a.AdminWishList)
	adminRouter.DELETE("/wishes/:id", a.AdminWishDelete)
	adminRouter.POST("/wishes/delete", a.AdminWishesDelete)
	adminRouter.GET("/download-zip", a.DownloadPhotos)
	adminRouter.GET("/download-wishes", a.DownloadWishesCSV)
	adminRouter.GET("/download-wishes-pdf", a.DownloadWishesPDF)
	// Misc
	if a.Files != nil {
		files := router.Group(storage.FilesRoute, (&utils.CacheRouter{CacheTime: 30 * 86400}).Handler())
		files.GET("/*path", a.FileServe)
	}
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", a.Health)
}

// DownloadPaths are streamed as is, they should not go through gzip
var DownloadPaths = []string{
	"/admin/download-zip",
	"/admin/download-wishes",
	"/admin/download-wishes-pdf",
	storage.FilesRoute,
}
