// Package app wires the letshang components together from a Config and
// runs the interactive session next to the local viewer.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/letshang/internal/cli"
	"github.com/dmitrijs2005/letshang/internal/config"
	"github.com/dmitrijs2005/letshang/internal/database"
	"github.com/dmitrijs2005/letshang/internal/filex"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/objecturl"
	"github.com/dmitrijs2005/letshang/internal/repositories/images"
	"github.com/dmitrijs2005/letshang/internal/repositories/metadata"
	"github.com/dmitrijs2005/letshang/internal/s3x"
	"github.com/dmitrijs2005/letshang/internal/server"
	"github.com/dmitrijs2005/letshang/internal/services"
)

// newS3Client is a test seam.
var newS3Client = s3x.NewClient

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *database.DB
	registry *objecturl.Registry

	Images *services.ImageService
	Events *services.EventService
	Drafts *services.DraftService
}

// New opens the store and builds the services described by c.
func New(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, c.LogLevel, c.LogFormat)

	if c.DatabaseDriver == database.DriverSQLite {
		if err := filex.EnsureParentDir(c.DatabaseDSN); err != nil {
			return nil, err
		}
	}
	db, err := database.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}
	if err := app.initImages(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.Events = services.NewEventService(db.DB, db.Dialect, services.Latency(c.Latency), logger)
	app.Drafts = services.NewDraftService(app.Events, metadata.NewSQLRepository(db.DB, db.Dialect), logger)
	return app, nil
}

func (app *App) initImages(ctx context.Context) error {
	c := app.config

	var (
		flyers, backgrounds images.Repository
		client              *s3.Client
		err                 error
	)
	switch c.BlobBackend {
	case config.BlobBackendS3:
		client, err = newS3Client(ctx, s3x.Config{
			User:         c.S3User,
			Password:     c.S3Password,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return fmt.Errorf("s3 init error: %w", err)
		}
		if flyers, err = images.NewS3Repository(client, c.S3Bucket, models.KeyspaceFlyer); err != nil {
			return err
		}
		if backgrounds, err = images.NewS3Repository(client, c.S3Bucket, models.KeyspaceBackground); err != nil {
			return err
		}
	default:
		if flyers, err = images.NewSQLRepository(app.db.DB, app.db.Dialect, models.KeyspaceFlyer); err != nil {
			return err
		}
		if backgrounds, err = images.NewSQLRepository(app.db.DB, app.db.Dialect, models.KeyspaceBackground); err != nil {
			return err
		}
	}

	var minter objecturl.Minter
	if c.URLMode == config.URLModePresign {
		minter = objecturl.NewPresigner(client, c.S3Bucket, c.PresignExpiry)
	} else {
		app.registry = objecturl.NewRegistry(c.PublicOrigin)
		minter = app.registry
	}

	app.Images = services.NewImageService(flyers, backgrounds, minter, app.logger)
	return nil
}

// Viewer returns the local viewer, or nil when it is disabled or not
// needed.
func (app *App) Viewer() *server.Server {
	if app.config.ViewerAddr == "" {
		return nil
	}
	var handles server.Handles = emptyHandles{}
	if app.registry != nil {
		handles = app.registry
	}
	return server.NewServer(app.config.ViewerAddr, app.config.PublicOrigin, app.logger, handles, app.Images, app.Events)
}

type emptyHandles struct{}

func (emptyHandles) Lookup(string) (objecturl.Handle, bool) { return objecturl.Handle{}, false }

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run positions the session on route, starts the viewer and blocks in the
// REPL until the user leaves or a signal arrives.
func (app *App) Run(ctx context.Context, route string, in io.Reader, out io.Writer) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	session := cli.NewApp(app.Drafts, app.Events, app.Images, app.config.PublicOrigin, app.logger, in, out)
	if err := session.Start(ctx, route); err != nil {
		return err
	}

	var wg sync.WaitGroup
	if v := app.Viewer(); v != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := v.Run(ctx); err != nil {
				app.logger.Error(ctx, "viewer stopped", "err", err)
			}
		}()
	}

	replDone := make(chan struct{})
	go func() {
		defer close(replDone)
		session.Run(ctx)
	}()

	select {
	case <-replDone:
	case <-ctx.Done():
	}
	cancelFunc()
	wg.Wait()
	return nil
}

// Close revokes every minted image URL and closes the database.
func (app *App) Close() error {
	app.Images.ReleaseAll()
	return app.db.Close()
}
