package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/almanac/internal/app"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/metrics"
)

var (
	serveListen string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Prometheus metrics",
	Long: `Load the data packs and expose registry sizes and runtime activity on a
Prometheus /metrics endpoint.

Example:
  almanac serve                     # listen on metrics.listen (default :9464)
  almanac serve --listen :8080 --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	m := metrics.New()
	a, err := loadApp(cmd.Context(), app.WithMetrics(m))
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	addr := serveListen
	if addr == "" {
		addr = cfg.Metrics.Listen
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var onChange <-chan struct{}
	if serveWatch {
		var stopWatcher func()
		onChange, stopWatcher, err = startWatcher()
		if err != nil {
			_ = server.Close()
			return err
		}
		defer stopWatcher()
	}

	fmt.Printf("Serving metrics on http://%s/metrics\n", ln.Addr())
	fmt.Println("Press Ctrl+C to stop")
	log.Info(log.CatConfig, "Metrics server started", "addr", ln.Addr().String(), "watch", serveWatch)

	loopErr := reloadLoop(ctx, a, onChange, errCh, nil, false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorErr(log.CatConfig, "Error stopping metrics server", err)
	}
	return loopErr
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (overrides metrics.listen)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload data packs when their files change")
	rootCmd.AddCommand(serveCmd)
}
