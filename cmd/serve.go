package cmd

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gallery/auth"
	"gallery/config"
	"gallery/handlers"
	"gallery/moderation"
	"gallery/pagination"
	"gallery/quota"
	"gallery/storage"
	"gallery/submission"
	"gallery/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	sessionCookieName     = "gallery"
	sessionExpirationTime = 365 * 86400 // 1 year
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// checkConfig refuses settings that cannot work and logs the ones that are merely unsafe
func checkConfig() error {
	if config.ADMIN_PASSWORD != "" && config.JWT_SECRET == "" {
		return errors.New("JWT_SECRET must be set when ADMIN_PASSWORD is")
	}
	if config.ADMIN_PASSWORD == "" {
		log.Printf("ADMIN_PASSWORD is not set, admin login is disabled")
	}
	if config.ADMIN_PASSCODE == "" {
		log.Printf("ADMIN_PASSCODE is not set, upload counters cannot be reset")
	}
	if config.SESSION_KEY == "" || config.SESSION_KEY == config.DefaultSessionKey {
		log.Printf("SESSION_KEY is not set, guest session cookies use a publicly known key")
	}
	return nil
}

func serve(ctx context.Context) error {
	if err := checkConfig(); err != nil {
		return err
	}
	store, err := openRecords(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())
	objects, err := openObjects()
	if err != nil {
		return err
	}

	tracker := quota.NewTracker(config.MAX_UPLOADS_PER_DEVICE, config.ADMIN_PASSCODE)
	api := &handlers.API{
		Submissions: &submission.Service{
			Objects: objects,
			Records: store,
			Quota:   tracker,
			Filter:  moderation.Default(),
		},
		Pages:     &pagination.Engine{Store: store},
		Lifecycle: newLifecycle(store, objects),
		Sessions:  &auth.Sessions{Password: config.ADMIN_PASSWORD, Secret: []byte(config.JWT_SECRET)},
		Quota:     tracker,
	}
	if disk, ok := objects.(*storage.DiskStorage); ok {
		api.Files = disk
	}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        30 * 24 * time.Hour,
	}))
	cookieStore := cookie.NewStore([]byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(handlers.DownloadPaths)))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	api.Register(router)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Printf("Server stopped: %v", err)
	return err
}
