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

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe",
		Short: "Print change-notification events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := pulse.Dial(ctx, pulse.Options{ServerAddr: flagServer, ClientName: "pulse-client"})
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Subscribe(ctx, command.SubscriptionMaskAll); err != nil {
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
					if se, ok := ev.(command.SubscriptionEvent); ok {
						var idx uint32
						if se.Index != nil {
							idx = *se.Index
						}
						fmt.Printf("facility=%d type=%d index=%d\n", se.Facility, se.EventType, idx)
					}
				}
			}
		},
	}
}
