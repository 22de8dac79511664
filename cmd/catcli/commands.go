package main

import (
	"fmt"
	"strings"

	"github.com/Station-Manager/cat"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	mnemonicStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Width(4)
	contractStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
	frameStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

func newCommandsCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the CAT command table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := cat.DefaultRegistry().Descriptors()
			if plain {
				for _, d := range ds {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.Mnemonic, d.Contract, d.Description)
				}
				return nil
			}

			var b strings.Builder
			b.WriteString(headerStyle.Render(fmt.Sprintf("%d commands", len(ds))))
			for _, d := range ds {
				b.WriteString("\n")
				b.WriteString(describe(d))
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Tab separated output without styling")

	return cmd
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup MNEMONIC",
		Short: "Show one command",
		Example: `  catcli lookup FA
  catcli lookup md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Mnemonics are case sensitive on the wire; the tool is lenient.
			m := strings.ToUpper(args[0])
			d, ok := cat.DefaultRegistry().LookupString(m)
			if !ok {
				return fmt.Errorf("%w: %q", cat.ErrUnknownCommand, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), frameStyle.Render(describe(d)))
			return nil
		},
	}
}

func describe(d cat.Descriptor) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		mnemonicStyle.Render(d.Mnemonic),
		contractStyle.Render(d.Contract.String()),
		d.Description,
	)
}
