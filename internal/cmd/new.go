package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/emailbuilder/internal/config/autoconfig"
	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/codec"
	"github.com/stateful/emailbuilder/pkg/document/editor"
	"github.com/stateful/emailbuilder/pkg/document/store"
)

func newCmd() *cobra.Command {
	var (
		blocks []string
		out    string
	)

	cmd := cobra.Command{
		Use:   "new",
		Short: "Create a document",
		Long: `New prints an empty email layout. Each --block appends a block with
default data to the layout, in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.Invoke(func(e *editor.Editor, s *store.Store, c *codec.Codec) error {
				for _, name := range blocks {
					t, err := document.ParseBlockType(name)
					if err != nil {
						return err
					}
					if _, err := e.AppendBlock(document.RootBlockID, 0, t); err != nil {
						return errors.Wrapf(err, "failed to append %s", name)
					}
				}

				data, err := c.Stringify(s.Get().Document)
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, append(data, '\n'))
			})
		},
	}

	cmd.Flags().StringArrayVarP(&blocks, "block", "b", nil, "Append a block of the given type, e.g. Text or Button.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the document to a file instead of stdout.")

	return &cmd
}
