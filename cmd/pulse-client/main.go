// Command pulse-client is a thin cobra CLI over the pulse package, one
// subcommand per introspection/streaming operation (list-sinks, play,
// record, subscribe, monitor-volume), in the spirit of the teacher's
// cmd/rtmp-server being a thin wrapper over internal/rtmp/server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alxayo/pulse-go/internal/logger"
)

// version is injected at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	flagServer   string
	flagLogLevel string
	flagLogFmt   string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "pulse-client",
		Short:   "A command-line client for the PulseAudio native protocol",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			os.Setenv("PULSE_LOG_FORMAT", flagLogFmt)
			logger.Init()
			return logger.SetLevel(flagLogLevel)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagServer, "server", "", "unix socket path (default: $PULSE_SERVER or $XDG_RUNTIME_DIR/pulse/native)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&flagLogFmt, "log-format", "tty", "log format: tty|json")

	root.AddCommand(
		newListSinksCmd(),
		newPlayCmd(),
		newRecordCmd(),
		newSubscribeCmd(),
		newMonitorVolumeCmd(),
	)
	return root
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
