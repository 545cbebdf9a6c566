package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/contact"
	"github.com/pders01/showreel/internal/debuglog"
)

var (
	listenAddr string
	logStderr  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the contact API",
	Long:  `Accepts contact form submissions on POST /api/contact and stores them in the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()
		if logStderr {
			level := debuglog.GetLevel()
			if level == debuglog.LevelOff {
				level = debuglog.LevelInfo
			}
			debuglog.SetOutput(level, os.Stderr)
		}
		if listenAddr != "" {
			cfg.Contact.Listen = listenAddr
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, store, func(addr net.Addr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "showreel %s contact API on http://%s/api/contact\n", Version, addr)
		})
	},
}

// serve runs the contact server until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, cfg *config.Config, store contact.Store, ready func(net.Addr)) error {
	srv := contact.NewServer(contact.ServerConfig{
		Addr:            cfg.Contact.Listen,
		AllowAllOrigins: cfg.Contact.AllowAllOrigins,
		AllowedOrigins:  cfg.Contact.AllowedOrigins,
		Timeout:         cfg.Contact.Timeout,
	}, store)

	l, err := net.Listen("tcp", cfg.Contact.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Contact.Listen, err)
	}
	if ready != nil {
		ready(l.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(l) })
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		debuglog.Infof("shutting down contact server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Address to listen on (overrides contact.listen)")
	serveCmd.Flags().BoolVar(&logStderr, "log-stderr", false, "Log to stderr instead of the log file")
	rootCmd.AddCommand(serveCmd)
}
