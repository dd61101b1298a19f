package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/emailbuilder/internal/config"
	"github.com/stateful/emailbuilder/internal/config/autoconfig"
	"github.com/stateful/emailbuilder/internal/renderer"
	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/codec"
	"github.com/stateful/emailbuilder/pkg/document/store"
)

const (
	modeHTML        = "html"
	modeInteractive = "interactive"
)

func renderCmd() *cobra.Command {
	var (
		rootID   string
		selected string
		mode     string
		out      string
		watch    bool
	)

	cmd := cobra.Command{
		Use:   "render [file]",
		Short: "Render a document to HTML or to an interactive element tree",
		Long: `Render imports a document and renders the subtree at --root.

With --watch the file is re-imported and re-rendered on every change
until interrupted. Failed imports are reported and the last good
document stays in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return autoconfig.Invoke(func(
				cfg *config.Config,
				c *codec.Codec,
				s *store.Store,
				opts renderer.Options,
				logger *zap.Logger,
			) error {
				if !cmd.Flags().Changed("mode") {
					mode = cfg.Render.Mode
				}
				if mode != modeHTML && mode != modeInteractive {
					return errors.Errorf("invalid mode %q, expected %q or %q", mode, modeHTML, modeInteractive)
				}
				if rootID != "" {
					opts.RootBlockID = document.BlockID(rootID)
				}
				opts.SelectedBlockID = document.BlockID(selected)

				data, name, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				if err := c.Import(s, data); err != nil {
					printImportError(cmd.ErrOrStderr(), name, err)
					return errors.Errorf("failed to import %s", name)
				}

				if !watch {
					result, err := renderOnce(s, opts, mode)
					if err != nil {
						return err
					}
					return writeOutput(cmd, out, result)
				}

				if name == stdinName {
					return errors.New("--watch requires a file argument")
				}
				return watchAndRender(cmd, name, out, mode, c, s, opts, logger)
			})
		},
	}

	cmd.Flags().StringVar(&rootID, "root", "", "Block to render from. Defaults to render.rootBlockId from the config.")
	cmd.Flags().StringVar(&selected, "selected", "", "Block to mark as selected in interactive mode.")
	cmd.Flags().StringVarP(&mode, "mode", "m", modeHTML, "Output mode: html or interactive.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the result to a file instead of stdout.")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render whenever the file changes.")

	return &cmd
}

func renderOnce(s *store.Store, opts renderer.Options, mode string) ([]byte, error) {
	doc := s.Get().Document
	if mode == modeInteractive {
		tree, err := renderer.RenderInteractive(doc, opts)
		if err != nil {
			return nil, err
		}
		data, err := document.EncodeJSON(tree, "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode element tree")
		}
		return append(data, '\n'), nil
	}

	html, err := renderer.RenderToStaticMarkup(doc, opts)
	if err != nil {
		return nil, err
	}
	return []byte(html + "\n"), nil
}

func watchAndRender(
	cmd *cobra.Command,
	name string,
	out string,
	mode string,
	c *codec.Codec,
	s *store.Store,
	opts renderer.Options,
	logger *zap.Logger,
) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files instead of writing them in place, so
	// the directory is watched rather than the file.
	if err := watcher.Add(filepath.Dir(name)); err != nil {
		return errors.Wrapf(err, "failed to watch %q", name)
	}

	emit := func(data []byte, err error) {
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
			return
		}
		if err := writeOutput(cmd, out, data); err != nil {
			logger.Info("failed to write render result", zap.Error(err))
		}
	}

	var unsubscribe func()
	if mode == modeHTML {
		unsubscribe = renderer.Preview(s, opts, logger, func(html string, err error) {
			emit([]byte(html+"\n"), err)
		})
	} else {
		emit(renderOnce(s, opts, mode))
		unsubscribe = store.Subscribe(s, store.DocumentRevision, func(uint64) {
			emit(renderOnce(s, opts, mode))
		})
	}
	defer unsubscribe()

	target, err := filepath.Abs(name)
	if err != nil {
		return errors.WithStack(err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if path, _ := filepath.Abs(event.Name); path != target {
					continue
				}
				reimport(cmd, name, c, s, logger)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return errors.Wrap(err, "watcher failed")
			}
		}
	})
	return g.Wait()
}

func reimport(cmd *cobra.Command, name string, c *codec.Codec, s *store.Store, logger *zap.Logger) {
	data, err := os.ReadFile(name)
	if err != nil {
		logger.Info("failed to read changed file", zap.String("name", name), zap.Error(err))
		return
	}
	if err := checkMimeType(data); err != nil {
		printImportError(cmd.ErrOrStderr(), name, err)
		return
	}
	if err := c.Import(s, data); err != nil {
		printImportError(cmd.ErrOrStderr(), name, err)
	}
}
