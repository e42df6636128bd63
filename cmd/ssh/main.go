package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"nft-recon/internal/config"
	"nft-recon/internal/service"
	"nft-recon/internal/tui"
	"nft-recon/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc             = godotenv.Load
	loadConfigFunc          = config.Load
	initTracerFunc          = tracing.InitTracer
	newReconcileServiceFunc = service.NewReconcileServiceFromConfig
	newWishServerFunc       = wish.NewServer
	setupSignalNotify       = ossignal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
)

// authOption restricts logins to the authorized_keys file when one is
// configured; otherwise any key is accepted and its fingerprint logged.
func authOption(cfg *config.Config) ssh.Option {
	if cfg.SSHAuthorizedKeys != "" {
		return wish.WithAuthorizedKeys(cfg.SSHAuthorizedKeys)
	}
	log.Println("Warning: SSH_AUTHORIZED_KEYS not set, accepting any public key")
	return wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
		log.Printf("SSH auth accepted: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
		return true
	})
}

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	reconcileService := newReconcileServiceFunc(tracer, cfg, nil)

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		authOption(cfg),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				model := tui.NewModel(s.Context(), reconcileService)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
