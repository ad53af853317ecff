package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"onborder/internal/backend"
	"onborder/internal/logging"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagLevel   string
		flagPort    uint16
		flagScreens string
	)

	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.Uint16VarP(&flagPort, "port", "p", 3000, "port to serve the onboarding API on")
	pflag.StringVarP(&flagScreens, "screens", "s", "", "YAML screen fixture (built-in screens when empty)")

	pflag.Parse()

	// Logger initialization.
	log, err := logging.New(os.Stderr, flagLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return failure
	}
	elog := lecho.From(log)

	// Screen fixture initialization.
	var store *backend.Store
	if flagScreens == "" {
		store, err = backend.Default()
	} else {
		store, err = backend.LoadFile(flagScreens)
	}
	if err != nil {
		log.Error().Str("screens", flagScreens).Err(err).Msg("could not load screens")
		return failure
	}
	onboarding, _ := store.OnboardingScreen()
	log.Info().
		Int("screen_id", onboarding.ID).
		Int("blocks", len(onboarding.Content.Blocks)).
		Msg("screens loaded")

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	backend.NewController(store, log).Register(server)

	// This section launches the server in its own goroutine. Afterwards, we
	// wait for an interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Uint16("port", flagPort).Msg("onborder server starting")
		err := server.Start(fmt.Sprint(":", flagPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("onborder server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("onborder server stopped")
	}()

	select {
	case <-sig:
		log.Info().Msg("onborder server stopping")
	case <-done:
		log.Info().Msg("onborder server done")
	case <-failed:
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = server.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down onborder server")
		return failure
	}

	return success
}
