// Package server is the local viewer: it serves the bytes behind locally
// minted image URLs and renders published events as JSON.
package server

import (
	"context"
	"errors"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/objecturl"
	"github.com/dmitrijs2005/letshang/internal/routing"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// Handles resolves minted blob tokens.
type Handles interface {
	Lookup(token string) (objecturl.Handle, bool)
}

// ImageLoader returns stored images.
type ImageLoader interface {
	Load(ctx context.Context, keyspace models.Keyspace, id string) (*models.ImageRecord, error)
}

// EventReader returns published events.
type EventReader interface {
	Read(ctx context.Context, id string) (*models.Event, error)
}

type Server struct {
	address string
	origin  string
	handles Handles
	images  ImageLoader
	events  EventReader
	logger  logging.Logger
}

func NewServer(address, origin string, l logging.Logger, h Handles, img ImageLoader, ev EventReader) *Server {
	return &Server{
		address: address,
		origin:  origin,
		handles: h,
		images:  img,
		events:  ev,
		logger:  l.With("module", "viewer"),
	}
}

// Handler builds the gin engine with all routes.
func (s *Server) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery(), s.accessLog())

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	g.GET(objecturl.BlobPath+":token", s.getBlob)
	g.GET("/event/:id", s.getEvent)
	return g
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) getBlob(c *gin.Context) {
	h, ok := s.handles.Lookup(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	rec, err := s.images.Load(c.Request.Context(), h.Keyspace, h.ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	if cd := mime.FormatMediaType("inline", map[string]string{"filename": rec.Filename}); cd != "" {
		c.Header("Content-Disposition", cd)
	}
	c.Data(http.StatusOK, mimetype.Detect(rec.Payload).String(), rec.Payload)
}

type eventView struct {
	*models.Event
	BackgroundClass string `json:"backgroundClass"`
	ShareLink       string `json:"shareLink"`
}

func (s *Server) getEvent(c *gin.Context) {
	id := c.Param("id")
	e, err := s.events.Read(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventView{
		Event:           e,
		BackgroundClass: e.BackgroundClass(),
		ShareLink:       routing.ShareLink(s.origin, id),
	})
}

func (s *Server) writeError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.logger.Error(c.Request.Context(), "viewer request failed", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping viewer...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting viewer", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
