package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Station-Manager/cat"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type parseFlags struct {
	stats bool
}

func newParseCmd(global *globalFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Run captured CAT bytes through the command engine",
		Long: `Parse reads raw CAT traffic from FILE, or stdin when FILE is omitted or "-",
and prints the outcome of every frame. Engine settings (terminator, maximum frame
length, query allowance) come from the config file.`,
		Example: `  printf 'FA014250000;ID;ZZ;' | catcli parse
  catcli parse capture.bin --stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := io.Reader(os.Stdin)
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runParse(global, flags, in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Print the metrics snapshot as JSON when done")

	return cmd
}

func runParse(global *globalFlags, flags *parseFlags, in io.Reader, out io.Writer) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	log, closer, err := cat.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts, err := cfg.Engine.ChannelOptions()
	if err != nil {
		return err
	}
	// Rejections are printed here, so error replies are never sent.
	opts = append(opts, cat.WithLogger(log), cat.WithErrorPolicy(cat.PolicyDrop))

	ch, err := cat.NewChannel(cat.DefaultRegistry(), nil, opts...)
	if err != nil {
		return err
	}

	buf := make([]byte, cat.ReadBufferSize)
	for {
		n, rerr := in.Read(buf)
		for o := range ch.Feed(buf[:n]) {
			printOutcome(out, o)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	if ch.Buffered() > 0 {
		fmt.Fprintf(out, "incomplete  %d bytes without terminator\n", ch.Buffered())
	}

	if flags.stats {
		data, err := json.MarshalIndent(ch.Metrics().Snapshot(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	}
	return nil
}

func printOutcome(out io.Writer, o cat.Outcome) {
	switch o.Kind {
	case cat.OutcomeDispatched:
		fmt.Fprintf(out, "%-11s %s %q\n", o.Kind, o.Command.Mnemonic, o.Params)
	case cat.OutcomeOverflow:
		fmt.Fprintf(out, "%-11s\n", o.Kind)
	default:
		fmt.Fprintf(out, "%-11s %v\n", o.Kind, o.Err)
	}
}
