package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-linkdots/internal/platform/tui"
	"github.com/vovakirdan/tui-linkdots/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Start an SSH server for terminal play and an HTTP server with a JSON
API and a websocket play endpoint. Pass an empty address to disable one.

Each SSH user name is a profile with its own saved progress. Websocket
clients name their profile with the profile query parameter.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.linkdots/host_key

Examples:
  linkdots serve                          # SSH on :23234, HTTP on :8080
  linkdots serve --ssh :2222 --http ""    # SSH only
  linkdots serve --ssh "" --http :9000    # HTTP only
  linkdots serve --host-key ./host_key --db ./linkdots.db

Users can connect with:
  ssh localhost -p 23234
  ws://localhost:8080/play?profile=NAME`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

// server is what serve runs: the SSH server or the HTTP server.
type server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fail("nothing to serve: both --ssh and --http are empty")
	}

	logger, closer := newLogger(false)
	defer closer.Close()

	cfg := loadConfig(logger)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runtime := runtimeConfig()
	runtime.Profile = ""

	var servers []server
	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.Runtime = runtime
		sshCfg.Theme = tui.ThemeByName(cfg.Display.Theme)

		sshServer, err := tui.NewSSHServer(sshCfg, store, logger)
		if err != nil {
			fail("creating SSH server: %v", err)
		}
		servers = append(servers, sshServer)
		fmt.Printf("SSH:  ssh localhost -p %s\n", portOf(flagSSHAddr))
	}
	if flagHTTPAddr != "" {
		servers = append(servers, web.NewServer(web.Options{
			Address: flagHTTPAddr,
			Config:  cfg,
			Store:   store,
			Logger:  logger,
			Seed:    flagSeed,
		}))
		fmt.Printf("HTTP: http://localhost:%s/api/health\n", portOf(flagHTTPAddr))
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			errs <- s.ListenAndServe()
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("shutdown failed", "err", err)
		}
	}

	if serveErr != nil {
		fail("server: %v", serveErr)
	}
}

// portOf returns the port of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
