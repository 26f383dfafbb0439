package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pulse "github.com/alxayo/pulse-go"
)

func newListSinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-sinks",
		Short: "List playback sinks known to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := pulse.Dial(ctx, pulse.Options{ServerAddr: flagServer, ClientName: "pulse-client"})
			if err != nil {
				return err
			}
			defer c.Close()

			sinks, err := c.GetSinkInfoList(ctx)
			if err != nil {
				return err
			}
			for _, s := range sinks {
				fmt.Printf("%d\t%s\t%s\t%dch@%dHz\n", s.Index, s.Name, s.Description, s.SampleSpec.Channels, s.SampleSpec.SampleRate)
			}
			return nil
		},
	}
}
