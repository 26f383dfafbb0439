package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	pulse "github.com/alxayo/pulse-go"
	"github.com/alxayo/pulse-go/internal/protocol/command"
)

// newMonitorVolumeCmd watches sink-change events and re-fetches that sink's
// volume, a common pattern for a system-tray-style volume indicator.
func newMonitorVolumeCmd() *cobra.Command {
	var sinkIndex uint32

	cmd := &cobra.Command{
		Use:   "monitor-volume",
		Short: "Print a sink's volume whenever it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := pulse.Dial(ctx, pulse.Options{ServerAddr: flagServer, ClientName: "pulse-client"})
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Subscribe(ctx, command.SubscriptionMaskSink); err != nil {
				return err
			}

			printVolume := func() error {
				sinks, err := c.GetSinkInfoList(ctx)
				if err != nil {
					return err
				}
				for _, s := range sinks {
					if s.Index != sinkIndex {
						continue
					}
					fmt.Printf("sink %d (%s): muted=%v volumes=%v\n", s.Index, s.Name, s.Muted, s.Volume.Volumes)
				}
				return nil
			}
			if err := printVolume(); err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-c.Events():
					if !ok {
						return nil
					}
					if se, ok := ev.(command.SubscriptionEvent); ok && se.Facility == command.FacilitySink {
						if err := printVolume(); err != nil {
							return err
						}
					}
				}
			}
		},
	}
	cmd.Flags().Uint32Var(&sinkIndex, "sink-index", 0, "sink index to watch")
	return cmd
}
