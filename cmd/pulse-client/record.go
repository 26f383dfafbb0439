package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	pulse "github.com/alxayo/pulse-go"
	"github.com/alxayo/pulse-go/internal/reactor"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

func newRecordCmd() *cobra.Command {
	var source string
	var rate uint32
	var channels uint8
	var ringBytes int

	cmd := &cobra.Command{
		Use:   "record <file>",
		Short: "Record raw PCM from a source until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer out.Close()

			ctx := cmd.Context()
			c, err := pulse.Dial(ctx, pulse.Options{ServerAddr: flagServer, ClientName: "pulse-client"})
			if err != nil {
				return err
			}
			defer c.Close()

			spec := tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: channels, SampleRate: rate}
			chMap := defaultStereoMap(channels)
			sink := reactor.NewRingSink(ringBytes)

			stream, err := c.CreateRecordStream(ctx, "pulse-client record", source, spec, chMap, sink, false)
			if err != nil {
				return err
			}
			defer stream.Close()

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-sigCtx.Done()
				sink.Close()
			}()

			buf := make([]byte, 64*1024)
			for {
				n, closed := sink.Read(buf)
				if n > 0 {
					if _, werr := out.Write(buf[:n]); werr != nil {
						return werr
					}
				}
				if closed {
					return nil
				}
			}
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "source name (default source if empty)")
	cmd.Flags().Uint32Var(&rate, "rate", 44100, "sample rate")
	cmd.Flags().Uint8Var(&channels, "channels", 2, "channel count")
	cmd.Flags().IntVar(&ringBytes, "buffer-bytes", 1<<20, "ring buffer capacity in bytes")
	return cmd
}
