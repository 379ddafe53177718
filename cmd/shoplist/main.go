// Command shoplist edits a shopping list and emails it to the signed-in
// Google account.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/shoplist/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shoplist/internal/adapters/driven/google"
	"github.com/custodia-labs/shoplist/internal/adapters/driven/render"
	"github.com/custodia-labs/shoplist/internal/adapters/driven/resources"
	"github.com/custodia-labs/shoplist/internal/adapters/driven/storage"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/cli"
	"github.com/custodia-labs/shoplist/internal/adapters/driving/oauth"
	"github.com/custodia-labs/shoplist/internal/core/domain"
	"github.com/custodia-labs/shoplist/internal/core/services"
	"github.com/custodia-labs/shoplist/internal/logger"
)

// LogFileName is written in the config directory while the editor runs.
const LogFileName = "shoplist.log"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetBootstrap(bootstrap)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires config, stores, Google and the core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	dir := filepath.Dir(configStore.Path())

	// The editor owns the terminal, so logs go to a file.
	var logCloser io.Closer = nopCloser{}
	if opts.Interactive {
		closer, err := logger.ToFile(filepath.Join(dir, LogFileName))
		if err != nil {
			logger.SetOutput(io.Discard)
		} else {
			logCloser = closer
		}
	}
	logger.Section("Startup")
	logger.Debug("Config file: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, errors.Join(err, logCloser.Close())
	}
	if opts.Store != "" {
		backend := domain.StoreBackend(opts.Store)
		if !backend.IsValid() {
			return nil, errors.Join(
				fmt.Errorf("%w: unknown store %q", domain.ErrInvalidInput, opts.Store),
				logCloser.Close(),
			)
		}
		settings.Store.Backend = backend
	}

	res := resources.NewResolver(settings.ResourceDir, settings.OAuth.ClientFile)
	logger.Debug("Resource directory: %s", res.Dir())

	opened := storage.Open(ctx, settings.Store, res, dir)

	authorizer := google.NewAuthorizer(google.Config{
		Resources:  res,
		ClientFile: settings.OAuth.ClientFile,
		Timeout:    settings.OAuth.Timeout,
		Listen: func(state string) (google.Callback, error) {
			server, err := oauth.Listen(state)
			if err != nil {
				return nil, err
			}
			return server, nil
		},
		OpenBrowser: oauth.OpenBrowser,
	})

	session := services.NewSessionService(opened.Store, authorizer)
	dispatch := services.NewDispatchService(session, render.NewPNGRenderer(), settings.Mail)

	svc := &cli.Services{
		Session:    session,
		Dispatch:   dispatch,
		Settings:   settingsService,
		ConfigPath: configStore.Path(),
		Close: func() error {
			return errors.Join(opened.Close(), logCloser.Close())
		},
	}
	if opened.Err != nil {
		svc.StartupErrors = append(svc.StartupErrors, opened.Err)
	}
	return svc, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
