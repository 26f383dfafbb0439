package main

import (
	"os"

	"github.com/spf13/cobra"

	pulse "github.com/alxayo/pulse-go"
	"github.com/alxayo/pulse-go/internal/reactor"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

func newPlayCmd() *cobra.Command {
	var sink string
	var rate uint32
	var channels uint8

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Play a raw PCM file through a sink",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := pulse.Dial(ctx, pulse.Options{ServerAddr: flagServer, ClientName: "pulse-client"})
			if err != nil {
				return err
			}
			defer c.Close()

			spec := tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: channels, SampleRate: rate}
			chMap := defaultStereoMap(channels)
			source := reactor.NewFixedSource(data)

			stream, err := c.CreatePlaybackStream(ctx, "pulse-client playback", sink, spec, chMap, source, false)
			if err != nil {
				return err
			}
			done := make(chan struct{})
			stream.OnEOF(func() { close(done) })

			select {
			case <-done:
			case <-ctx.Done():
			}
			return stream.Drain(ctx)
		},
	}
	cmd.Flags().StringVar(&sink, "sink", "", "sink name (default sink if empty)")
	cmd.Flags().Uint32Var(&rate, "rate", 44100, "sample rate")
	cmd.Flags().Uint8Var(&channels, "channels", 2, "channel count")
	return cmd
}

func defaultStereoMap(channels uint8) tagstruct.ChannelMap {
	switch channels {
	case 1:
		return tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionMono}}
	case 2:
		return tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{
			tagstruct.ChannelPositionFrontLeft, tagstruct.ChannelPositionFrontRight,
		}}
	default:
		positions := make([]tagstruct.ChannelPosition, channels)
		for i := range positions {
			positions[i] = tagstruct.ChannelPositionAux0 + tagstruct.ChannelPosition(i)
		}
		return tagstruct.ChannelMap{Positions: positions}
	}
}
