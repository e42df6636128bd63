package main

import (
	"context"
	"os"
	"testing"
	"time"

	"nft-recon/internal/config"
	"nft-recon/internal/metrics"
	"nft-recon/internal/service"

	"github.com/charmbracelet/ssh"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	restore := stubSSHDeps()
	defer restore()

	var options int
	newWishServerFunc = func(ops ...ssh.Option) (*ssh.Server, error) {
		options = len(ops)
		return nil, nil
	}

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}

	if options != 4 {
		t.Fatalf("expected address, host key, auth and middleware options, got %d", options)
	}
}

func TestAuthOption(t *testing.T) {
	if authOption(&config.Config{}) == nil {
		t.Fatal("expected public key auth option")
	}
	if authOption(&config.Config{SSHAuthorizedKeys: "testdata/authorized_keys"}) == nil {
		t.Fatal("expected authorized keys option")
	}
}

func stubSSHDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitTracer := initTracerFunc
	origNewReconcile := newReconcileServiceFunc
	origNewWishServer := newWishServerFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			SSHPort:        2222,
			SSHHostKeyPath: ".ssh/test_key",
		}
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newReconcileServiceFunc = func(trace.Tracer, *config.Config, *metrics.Metrics) *service.ReconcileService {
		return nil
	}
	newWishServerFunc = func(ops ...ssh.Option) (*ssh.Server, error) {
		return nil, nil
	}
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initTracerFunc = origInitTracer
		newReconcileServiceFunc = origNewReconcile
		newWishServerFunc = origNewWishServer
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
	}
}
