package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Station-Manager/cat"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type portFlags struct {
	port string
	baud int
}

func (f *portFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.port, "port", "", "Serial device, overrides serial.port_name")
	cmd.Flags().IntVar(&f.baud, "baud", 0, "Baud rate, overrides serial.baud_rate")
}

func (f *portFlags) apply(cfg *cat.SerialConfig) {
	if f.port != "" {
		cfg.PortName = f.port
	}
	if f.baud != 0 {
		cfg.BaudRate = f.baud
	}
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := cat.AvailablePorts()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no serial ports found")
				return nil
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

type listenFlags struct {
	portFlags
	id string
}

func newListenCmd(global *globalFlags) *cobra.Command {
	flags := &listenFlags{}

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Serve CAT commands arriving on a serial port",
		Long: `Listen opens the configured port as the rig side of the link: every command
a controller sends is decoded and logged. With --id the ID command is answered,
which is enough for most logging programs to detect the rig.`,
		Example: `  catcli listen --port /dev/ttyUSB0 --id 0670 --log-level debug`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListen(global, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.id, "id", "", "Answer ID; with this radio ID")

	return cmd
}

func runListen(global *globalFlags, flags *listenFlags) error {
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

	reg := cat.DefaultRegistry()
	router := cat.NewRouter(reg)
	router.Fallback(logHandler(log, reg))
	if flags.id != "" {
		reply := "ID" + flags.id
		if err := router.HandleFunc(cat.CmdID, func(id cat.CommandID, params []byte, w cat.ReplyWriter) {
			if err := w.ReplyString(reply); err != nil {
				log.Warn().Err(err).Msg("ID reply failed")
			}
		}); err != nil {
			return err
		}
	}

	metrics := &cat.Metrics{}
	port, err := openPort(cfg, reg, router, log, metrics)
	if err != nil {
		return err
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var snapshots <-chan cat.MetricsSnapshot
	if cfg.Metrics.IntervalMS > 0 {
		mb := cat.NewMetricsBroadcaster(max(cfg.Metrics.ChannelSize, 1), cfg.Metrics.Interval())
		mb.Start(metrics)
		defer mb.Stop()
		snapshots = mb.C()
	}

	log.Info().Str("port", cfg.Serial.PortName).Msg("listening, interrupt to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-port.Done():
			return port.Err()
		case s, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			log.Info().
				Int64("frames", s.Frames).
				Int64("dispatched", s.Dispatched).
				Int64("rejected", s.UnknownCommands+s.MalformedParameters).
				Int64("overflows", s.Overflows).
				Str("health", string(s.HealthStatus)).
				Msg("metrics")
		}
	}
}

type sendFlags struct {
	portFlags
	wait time.Duration
}

func newSendCmd(global *globalFlags) *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send COMMAND",
		Short: "Send one CAT command and print the answers",
		Example: `  catcli send FA --port /dev/ttyUSB0
  catcli send "MD02;"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(global, flags, args[0], cmd)
		},
	}
	flags.register(cmd)
	cmd.Flags().DurationVar(&flags.wait, "wait", time.Second, "How long to wait for answers")

	return cmd
}

func runSend(global *globalFlags, flags *sendFlags, command string, cmd *cobra.Command) error {
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

	reg := cat.DefaultRegistry()
	out := cmd.OutOrStdout()
	printer := cat.HandlerFunc(func(id cat.CommandID, params []byte, w cat.ReplyWriter) {
		fmt.Fprintf(out, "%s%s\n", reg.Name(id), params)
	})

	// The rig answers bad commands with "?;", which must not be answered back.
	port, err := openPort(cfg, reg, printer, log, nil, cat.WithErrorPolicy(cat.PolicyDrop))
	if err != nil {
		return err
	}
	defer port.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), flags.wait)
	defer cancel()

	if err := port.WriteCommand(ctx, command); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return nil
	case <-port.Done():
		return port.Err()
	}
}

func openPort(cfg cat.Config, reg *cat.Registry, h cat.Handler, log zerolog.Logger, metrics *cat.Metrics, extra ...cat.ChannelOption) (*cat.Port, error) {
	opts, err := channelOptions(cfg, log, metrics, extra...)
	if err != nil {
		return nil, err
	}
	return cat.Open(cfg.Serial, reg, h, opts...)
}

func channelOptions(cfg cat.Config, log zerolog.Logger, metrics *cat.Metrics, extra ...cat.ChannelOption) ([]cat.ChannelOption, error) {
	opts, err := cfg.Engine.ChannelOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, cat.WithLogger(log))
	if metrics != nil {
		opts = append(opts, cat.WithMetrics(metrics))
	}
	return append(opts, extra...), nil
}

func logHandler(log zerolog.Logger, reg *cat.Registry) cat.Handler {
	return cat.HandlerFunc(func(id cat.CommandID, params []byte, w cat.ReplyWriter) {
		log.Info().Str("command", reg.Name(id)).Bytes("params", params).Msg("received")
	})
}
