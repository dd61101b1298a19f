package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var fChdir string

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "emailbuilder",
		Short:         "Validate, render and share block-based email documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if fChdir == "" || fChdir == "." {
				return nil
			}
			return errors.Wrapf(os.Chdir(fChdir), "failed to change directory to %q", fChdir)
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fChdir, "chdir", ".", "Switch to a different working directory before executing the command.")

	cmd.AddCommand(blocksCmd())
	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(newCmd())
	cmd.AddCommand(openCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(shareCmd())
	cmd.AddCommand(validateCmd())

	return &cmd
}
