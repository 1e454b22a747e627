// Package handlers exposes the roster over HTTP with gin.
package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faizan/roster/metrics"
	"github.com/faizan/roster/middleware"
)

// Deps is everything the router needs. All fields are required.
type Deps struct {
	Users        *UserHandler
	Artists      *ArtistHandler
	Songs        *SongHandler
	Bulk         *BulkHandler
	Tokens       middleware.TokenParser
	LoginLimiter *middleware.RateLimiter
	Metrics      *metrics.Metrics
	DB           Pinger
	Log          *zap.Logger

	TrustedProxies []string
}

// NewRouter wires middleware and routes under /api/v1.
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Metrics(d.Metrics),
		middleware.Recovery(d.Log),
		middleware.Errors(d.Log),
	)
	r.NoRoute(middleware.NoRoute)

	r.GET("/healthz", Health(d.DB))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api/v1")

	limit := d.LoginLimiter.Handler()
	public := api.Group("/users")
	public.POST("/login", limit, d.Users.Login)
	public.POST("/refresh-token", limit, d.Users.Refresh)

	authed := api.Group("", middleware.Authenticate(d.Tokens))
	can := func(res middleware.Resource, op middleware.Operation) gin.HandlerFunc {
		return middleware.Authorize(middleware.Perm(res, op))
	}

	u := authed.Group("/users")
	u.POST("", can(middleware.ResourceUser, middleware.OpCreate), d.Users.Create)
	u.GET("", can(middleware.ResourceUser, middleware.OpList), d.Users.List)
	u.GET("/:id", can(middleware.ResourceUser, middleware.OpGet), d.Users.Get)
	u.PUT("/:id", can(middleware.ResourceUser, middleware.OpUpdate), d.Users.Update)
	u.DELETE("/:id", can(middleware.ResourceUser, middleware.OpDelete), d.Users.Delete)

	a := authed.Group("/artists")
	a.POST("", can(middleware.ResourceArtist, middleware.OpCreate), d.Artists.Create)
	a.GET("", can(middleware.ResourceArtist, middleware.OpList), d.Artists.List)
	a.GET("/export/all", can(middleware.ResourceArtist, middleware.OpExport), d.Bulk.ExportAll)
	a.GET("/download/:id", can(middleware.ResourceArtist, middleware.OpExport), d.Bulk.ExportOne)
	a.POST("/upload", can(middleware.ResourceArtist, middleware.OpImport), d.Bulk.Import)
	a.GET("/:id", can(middleware.ResourceArtist, middleware.OpGet), d.Artists.Get)
	a.PUT("/:id", can(middleware.ResourceArtist, middleware.OpUpdate), d.Artists.Update)
	a.DELETE("/:id", can(middleware.ResourceArtist, middleware.OpDelete), d.Artists.Delete)

	m := authed.Group("/music")
	m.POST("", can(middleware.ResourceSong, middleware.OpCreate), d.Songs.Create)
	m.GET("", can(middleware.ResourceSong, middleware.OpList), d.Songs.List)
	m.GET("/artist/:artistId", can(middleware.ResourceSong, middleware.OpList), d.Songs.ListByArtist)
	m.GET("/:id", can(middleware.ResourceSong, middleware.OpGet), d.Songs.Get)
	m.PUT("/:id", can(middleware.ResourceSong, middleware.OpUpdate), d.Songs.Update)
	m.DELETE("/:id", can(middleware.ResourceSong, middleware.OpDelete), d.Songs.Delete)

	return r, nil
}
