package cmd

import (
	"bytes"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/emailbuilder/internal/config/autoconfig"
	"github.com/stateful/emailbuilder/pkg/document/codec"
)

func fmtCmd() *cobra.Command {
	var (
		write bool
		check bool
	)

	cmd := cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a document in canonical form",
		Long:  "Fmt parses a document and prints it with sorted keys and two-space indentation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && check {
				return errors.New("--write and --check cannot be used together")
			}

			return autoconfig.Invoke(func(c *codec.Codec) error {
				data, name, err := readInput(cmd, args)
				if err != nil {
					return err
				}

				doc, err := c.Parse(data)
				if err != nil {
					printImportError(cmd.ErrOrStderr(), name, err)
					return errors.Errorf("failed to parse %s", name)
				}

				formatted, err := c.Stringify(doc)
				if err != nil {
					return err
				}
				formatted = append(formatted, '\n')

				switch {
				case check:
					if bytes.Equal(data, formatted) {
						return nil
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is not formatted (-current +formatted):\n%s", name, cmp.Diff(string(data), string(formatted)))
					return errors.Errorf("%s is not formatted", name)
				case write:
					if name == stdinName {
						return errors.New("--write requires a file argument")
					}
					return writeOutput(cmd, name, formatted)
				default:
					return writeOutput(cmd, "", formatted)
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file.")
	cmd.Flags().BoolVar(&check, "check", false, "Fail if the file is not formatted.")

	return &cmd
}
