package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/emailbuilder/internal/renderer/row"
	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/schema"
)

func blocksCmd() *cobra.Command {
	var asJSON bool

	cmd := cobra.Command{
		Use:   "blocks",
		Short: "List the block types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				defaults := make(map[string]document.Block, len(document.BlockTypes))
				for _, t := range document.BlockTypes {
					defaults[t.String()] = schema.Defaults(t)
				}
				data, err := document.EncodeJSON(defaults, "  ")
				if err != nil {
					return errors.WithStack(err)
				}
				return writeOutput(cmd, "", append(data, '\n'))
			}

			layout := row.New(
				[]int{18, 11, 40},
				row.WithStyles(lipgloss.NewStyle().Bold(true)),
			)
			rows := [][]string{{"TYPE", "KIND", "STYLE"}}
			for _, t := range document.BlockTypes {
				kind := "leaf"
				if t.IsContainer() {
					kind = "container"
				}
				style := strings.Join(schema.StyleShape(t), ", ")
				if style == "" {
					style = "-"
				}
				rows = append(rows, []string{t.String(), kind, style})
			}
			return writeOutput(cmd, "", []byte(layout.Lines(rows)))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the default block of every type as JSON.")

	return &cmd
}
