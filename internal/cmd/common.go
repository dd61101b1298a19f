package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/emailbuilder/pkg/document/codec"
)

const stdinName = "-"

// readInput reads the document named by the first argument, or stdin
// when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (data []byte, name string, _ error) {
	name = stdinName
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	}

	var err error
	if name == stdinName {
		if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return nil, name, errors.New("no input: pass a file or pipe a document to stdin")
		}
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, name, errors.Wrap(err, "failed to read from stdin")
		}
	} else {
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, name, errors.Wrapf(err, "failed to read file %q", name)
		}
	}

	return data, name, checkMimeType(data)
}

// checkMimeType rejects binary input early. Anything textual is left
// for the parser, which reports precise syntax errors.
func checkMimeType(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return nil
		}
	}
	return errors.Errorf("unsupported input of type %s, expected a JSON document", detected.String())
}

func writeOutput(cmd *cobra.Command, out string, data []byte) error {
	if out == "" || out == stdinName {
		_, err := cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "failed to write result")
	}
	return errors.Wrapf(os.WriteFile(out, data, 0o644), "failed to write %q", out)
}

func printImportError(w io.Writer, name string, err error) {
	ierr, ok := codec.AsImportError(err)
	if !ok {
		_, _ = fmt.Fprintf(w, "%s: %v\n", name, err)
		return
	}

	_, _ = fmt.Fprintf(w, "%s: %s\n", name, ierr.Kind)
	if ierr.Err != nil {
		_, _ = fmt.Fprintf(w, "  %v\n", ierr.Err)
	}
	for _, issue := range ierr.Issues {
		_, _ = fmt.Fprintf(w, "  %s: %s (%s)\n", issue.Path, issue.Message, issue.Code)
	}
}
