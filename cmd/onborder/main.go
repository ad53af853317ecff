package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"onborder/internal/config"
	"onborder/internal/logging"
	"onborder/internal/onboarding"
	"onborder/internal/repository"
	"onborder/internal/trace"
	"onborder/internal/ui"
)

// flushTimeout bounds how long exit waits for pending conversion reports.
const flushTimeout = 3 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		fmt.Print(config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, logFile, err := logging.OpenFile(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	exporter, err := trace.NewOTLPExporter(context.Background(), cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
	if err != nil {
		log.Warn().Err(err).Msg("trace export disabled")
	}

	var repo onboarding.Repository
	if cfg.Offline {
		log.Info().Msg("offline: serving the built-in screen")
		repo = repository.NewStatic(repository.EmptyScreen())
	} else {
		client, err := repository.NewClient(cfg.Endpoint,
			repository.WithTimeout(cfg.Timeout),
			repository.WithLogger(log),
			repository.WithTracer(exporter.Tracer("onborder/repository")),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		repo = client
	}

	ctrl := onboarding.New(repo, onboarding.WithLogger(log))
	model := ui.NewAppModel(ctrl, ui.WithFetchTimeout(cfg.Timeout), ui.WithLogger(log)).AsTeaModel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	ctrl.Discard()
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	if err := ctrl.Wait(ctx); err != nil {
		log.Warn().Err(err).Msg("gave up waiting for conversion reports")
	}
	if err := exporter.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("could not flush traces")
	}
	cancel()

	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
		os.Exit(1)
	}
}
