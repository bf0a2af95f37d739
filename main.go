package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/eizo/internal/catalog"
	"github.com/ytget/eizo/internal/config"
	"github.com/ytget/eizo/internal/feed"
	"github.com/ytget/eizo/internal/logging"
	"github.com/ytget/eizo/internal/model"
	"github.com/ytget/eizo/internal/mpv"
	"github.com/ytget/eizo/internal/playback"
	"github.com/ytget/eizo/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.eizo"
	AppName = "Eizo"

	WindowWidth  = 420
	WindowHeight = 760

	CatalogLoadTimeout = 10 * time.Second
)

func main() {
	env, err := config.LoadEnv(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(env.LogLevel)
	slog.SetDefault(logger)
	logger.Info("starting", "app", AppName, "version", version)

	clips, err := loadCatalog(env, logger)
	if err != nil {
		logger.Error("load catalog", "error", err)
		os.Exit(1)
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewFeedTheme())
	if icon, err := ui.LoadAppIcon(); err == nil {
		myApp.SetIcon(icon)
	} else {
		logger.Debug("app icon not loaded", "error", err)
	}

	settings := config.NewSettings(myApp)

	f, err := feed.NewController(clips, feed.DefaultConfig())
	if err != nil {
		logger.Error("create feed", "error", err)
		os.Exit(1)
	}
	if _, err := f.ScrollTo(settings.GetStartIndex(f.Len())); err != nil {
		logger.Warn("restore start index", "error", err)
	}

	bridge := playback.NewBridge(
		surfaceFactory(env, logger),
		playback.Config{
			PollInterval:    env.PollInterval,
			MaxLoadAttempts: env.LoadAttempts,
		},
		logging.WithComponent(logger, "playback"),
	)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	view := ui.NewFeedView(myWindow, myApp, f, bridge, settings, logging.WithComponent(logger, "ui"))
	myWindow.SetOnClosed(func() {
		view.Close()
		bridge.Close()
	})

	myWindow.ShowAndRun()
	logger.Info("stopped")
}

// loadCatalog reads the clip list from EIZO_CATALOG or falls back to the
// bundled sample feed
func loadCatalog(env *config.Env, logger *slog.Logger) ([]model.Clip, error) {
	var source catalog.Source = catalog.Sample()
	if env.CatalogPath != "" {
		source = catalog.NewFileSource(env.CatalogPath)
		logger.Info("using catalog file", "path", env.CatalogPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), CatalogLoadTimeout)
	defer cancel()
	return source.Clips(ctx)
}

// surfaceFactory picks mpv when requested or installed, else the built-in
// clock surface
func surfaceFactory(env *config.Env, logger *slog.Logger) playback.SurfaceFactory {
	useMPV := false
	switch env.Surface {
	case config.SurfaceMPV:
		useMPV = true
		if !mpv.Available(env.MPVPath) {
			logger.Warn("mpv requested but not found", "binary", env.MPVPath)
		}
	case config.SurfaceAuto:
		useMPV = mpv.Available(env.MPVPath)
	}

	if !useMPV {
		logger.Info("using simulated playback surface")
		return playback.ClockFactory
	}

	mpvLogger := logging.WithComponent(logger, "mpv")
	opts := mpv.Options{
		Binary:    env.MPVPath,
		ExtraArgs: env.MPVArgs,
	}
	if env.Resolver == config.ResolverYTDLP {
		opts.Resolver = mpv.NewStreamResolver(env.StreamFormat, "", mpvLogger)
	}

	logger.Info("using mpv playback surface", "binary", env.MPVPath, "resolver", env.Resolver)
	return mpv.NewFactory(opts, mpvLogger)
}
