package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/emailbuilder/internal/config/autoconfig"
	"github.com/stateful/emailbuilder/pkg/document/codec"
)

func validateCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that documents can be imported",
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.Invoke(func(c *codec.Codec) error {
				if len(args) == 0 {
					args = []string{stdinName}
				}

				failed := 0
				for _, arg := range args {
					data, name, err := readInput(cmd, []string{arg})
					if err == nil {
						var n int
						n, err = countBlocks(c, data)
						if err == nil {
							_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d blocks\n", name, color.GreenString("valid"), n)
							continue
						}
					}
					failed++
					printImportError(cmd.OutOrStdout(), name, err)
				}

				if failed > 0 {
					return errors.Errorf("%d of %d documents are invalid", failed, len(args))
				}
				return nil
			})
		},
	}

	return &cmd
}

func countBlocks(c *codec.Codec, data []byte) (int, error) {
	doc, err := c.Parse(data)
	if err != nil {
		return 0, err
	}
	return len(doc), nil
}
