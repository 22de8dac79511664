package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Station-Manager/cat"
	"github.com/spf13/cobra"
)

type monitorFlags struct {
	portFlags
	interval   time.Duration
	backoffMax time.Duration
}

func newMonitorCmd(global *globalFlags) *cobra.Command {
	flags := &monitorFlags{}

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Poll a rig for its VFO frequencies",
		Long: `Monitor polls the rig with FA; and FB; and prints every answer with its raw
nine digit payload. When the port fails it is reopened with exponential backoff
starting at one second.`,
		Example: `  catcli monitor --port /dev/ttyUSB0 --interval 500ms`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runMonitor(ctx, global, flags, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&flags.interval, "interval", 0, "Poll interval, defaults to metrics.interval_ms")
	cmd.Flags().DurationVar(&flags.backoffMax, "backoff-max", cat.DefaultBackoffMax, "Longest wait between reopen attempts")

	return cmd
}

func runMonitor(ctx context.Context, global *globalFlags, flags *monitorFlags, out io.Writer) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	flags.apply(&cfg.Serial)

	log, closer, err := cat.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	interval := flags.interval
	if interval == 0 {
		interval = cfg.Metrics.Interval()
	}

	reg := cat.DefaultRegistry()
	router, err := vfoPrinter(reg, out)
	if err != nil {
		return err
	}
	opts, err := channelOptions(cfg, log, nil)
	if err != nil {
		return err
	}

	m, err := cat.NewMonitor(cfg.Serial, reg, router,
		cat.WithPollInterval(interval),
		cat.WithReconnectBackoff(cat.DefaultBackoffMin, max(flags.backoffMax, cat.DefaultBackoffMin)),
		cat.WithMonitorChannel(opts...),
		cat.WithMonitorLogger(log),
	)
	if err != nil {
		return err
	}

	log.Info().Str("port", cfg.Serial.PortName).Dur("interval", interval).Msg("monitoring, interrupt to stop")
	return m.Run(ctx)
}

// vfoPrinter prints FA and FB answers as "FA 014250000".
func vfoPrinter(reg *cat.Registry, out io.Writer) (*cat.Router, error) {
	router := cat.NewRouter(reg)
	for _, id := range []cat.CommandID{cat.CmdFA, cat.CmdFB} {
		err := router.HandleFunc(id, func(id cat.CommandID, params []byte, w cat.ReplyWriter) {
			fmt.Fprintf(out, "%s %s\n", reg.Name(id), params)
		})
		if err != nil {
			return nil, err
		}
	}
	return router, nil
}
