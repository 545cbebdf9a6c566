package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pders01/showreel/internal/carousel"
	"github.com/pders01/showreel/internal/catalog"
	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/device"
)

var (
	watchDuration time.Duration
	watchAdvance  float64
	watchClick    int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the carousels headless and print snapshots as JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if watchDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, watchDuration)
			defer cancel()
		}
		return watch(ctx, cfg, cat, cmd.OutOrStdout())
	},
}

// watch drives a services strip and the showcase until ctx is done, writing
// one JSON snapshot per state change to w.
func watch(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, w io.Writer) error {
	cc := cfg.Carousel
	mode, err := carousel.ParseWrapMode(cc.WrapMode)
	if err != nil {
		return err
	}
	strip, err := carousel.NewStrip(len(cat.Services), float64(cc.CardWidth+cc.Gap), carousel.StripOptions{
		Repetitions: cc.Repetitions,
		Sensitivity: cc.DragSensitivity,
		Mode:        mode,
	})
	if err != nil {
		return err
	}
	strip.Seed()

	sc := cfg.Showcase
	show, err := carousel.NewShowcase(min(sc.Slots, len(cat.Videos)),
		carousel.WithRand(carousel.NewRand(sc.Seed)),
		carousel.WithPulse(sc.PulseDuration),
		carousel.WithLowEnd(detectLowEnd(cfg)),
	)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	d := carousel.NewDriver(strip, show, carousel.DriverConfig{
		ShuffleInterval:  sc.ShuffleInterval,
		FrameInterval:    cc.FrameInterval,
		ExpandDuration:   sc.ExpandDuration,
		CollapseDuration: sc.CollapseDuration,
		AutoAdvance:      watchAdvance,
	}, func(s carousel.Snapshot) {
		if err := enc.Encode(s); err != nil {
			debuglog.Warnf("writing snapshot: %v", err)
		}
	})
	d.Start(ctx)
	defer d.Close()

	if watchClick > 0 {
		if err := d.Send(ctx, carousel.ClickEvent{Slot: watchClick - 1}); err != nil {
			return err
		}
	}

	<-ctx.Done()
	return nil
}

// detectLowEnd applies the same host heuristic the TUI uses. There is no
// viewport here, so only the network, memory and core rules can match.
func detectLowEnd(cfg *config.Config) bool {
	low, rule := cfg.Device.LowEnd(device.Detect(cfg.Device.NetworkClass, 0))
	if low {
		debuglog.Infof("watch: low-end mode (rule: %s)", rule)
	}
	return low
}

func init() {
	watchCmd.Flags().DurationVar(&watchDuration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	watchCmd.Flags().Float64Var(&watchAdvance, "advance", 0, "Auto-advance the services strip by this much per frame")
	watchCmd.Flags().IntVar(&watchClick, "click", 0, "Click this showcase slot (1-based) on start")
	rootCmd.AddCommand(watchCmd)
}
