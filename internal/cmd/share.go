package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/emailbuilder/internal/config"
	"github.com/stateful/emailbuilder/internal/config/autoconfig"
	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/codec"
)

func shareCmd() *cobra.Command {
	var base string

	cmd := cobra.Command{
		Use:   "share [file]",
		Short: "Print a URL carrying the document in its fragment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.Invoke(func(cfg *config.Config, c *codec.Codec) error {
				if base == "" {
					base = cfg.Share.BaseURL
				}

				data, name, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				doc, err := c.Parse(data)
				if err != nil {
					printImportError(cmd.ErrOrStderr(), name, err)
					return errors.Errorf("failed to parse %s", name)
				}

				url, err := c.ShareURL(base, doc)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
				return errors.WithStack(err)
			})
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base URL. Defaults to share.baseUrl from the config.")

	return &cmd
}

func openCmd() *cobra.Command {
	var fallback string

	cmd := cobra.Command{
		Use:   "open <url-or-hash>",
		Short: "Print the document carried by a share URL",
		Long: `Open decodes the document from a share URL or a "#code/..." hash.

An undecodable fragment yields the fallback document, which is the
empty email layout unless --fallback names a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.Invoke(func(c *codec.Codec) error {
				var fallbackDoc document.Document
				if fallback != "" {
					data, err := os.ReadFile(fallback)
					if err != nil {
						return errors.Wrapf(err, "failed to read fallback %q", fallback)
					}
					fallbackDoc, err = c.Parse(data)
					if err != nil {
						printImportError(cmd.ErrOrStderr(), fallback, err)
						return errors.Errorf("failed to parse fallback %s", fallback)
					}
				}

				doc := c.FromHash(args[0], fallbackDoc)

				data, err := c.Stringify(doc)
				if err != nil {
					return err
				}
				return writeOutput(cmd, "", append(data, '\n'))
			})
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", "", "Document to use when the fragment cannot be decoded.")

	return &cmd
}
