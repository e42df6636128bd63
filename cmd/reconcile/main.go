package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nft-recon/internal/config"
	"nft-recon/internal/report"
	"nft-recon/internal/service"
	"nft-recon/internal/tui"
	"nft-recon/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc             = godotenv.Load
	loadConfigFunc          = config.Load
	initTracerFunc          = tracing.InitTracer
	newReconcileServiceFunc = service.NewReconcileServiceFromConfig
	runProgramFunc          = func(m tea.Model) (tea.Model, error) { return tea.NewProgram(m).Run() }
)

var output io.Writer = os.Stdout

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	reconcileService := newReconcileServiceFunc(tracer, cfg, nil)

	final, err := runProgramFunc(tui.NewModel(ctx, reconcileService))
	if err != nil {
		log.Fatalf("terminal UI failed: %v", err)
	}

	// Leave the last report in the terminal scrollback.
	if m, ok := final.(*tui.Model); ok && m.Report() != nil {
		if err := report.Render(output, m.Report()); err != nil {
			log.Printf("failed to print report: %v", err)
		}
	}
}
