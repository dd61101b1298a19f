// Package autoconfig creates the emailbuilder components from
// [config.Config]: the logger, the schema registry, the codec, the
// document store, the editor and the render options.
//
// For example, to get an editor bound to a fresh store, write:
//
//	autoconfig.NewBuilder().Invoke(func(e *editor.Editor, s *store.Store) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism. Every provider can be
// replaced with Decorate, which is how tests inject configuration.
package autoconfig

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/internal/config"
	"github.com/stateful/emailbuilder/internal/log"
	"github.com/stateful/emailbuilder/internal/renderer"
	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/codec"
	"github.com/stateful/emailbuilder/pkg/document/editor"
	"github.com/stateful/emailbuilder/pkg/document/identity"
	"github.com/stateful/emailbuilder/pkg/document/schema"
	"github.com/stateful/emailbuilder/pkg/document/store"
)

const (
	configName = "emailbuilder"
	configType = "yaml"
)

type Builder struct {
	container *dig.Container
}

func NewBuilder() *Builder {
	b := &Builder{container: dig.New()}

	mustProvide(b.container.Provide(getConfigLoader))
	mustProvide(b.container.Provide(getConfig))
	mustProvide(b.container.Provide(getLogger))
	mustProvide(b.container.Provide(getRegistry))
	mustProvide(b.container.Provide(getGenerator))
	mustProvide(b.container.Provide(getCodec))
	mustProvide(b.container.Provide(getStore))
	mustProvide(b.container.Provide(getEditor))
	mustProvide(b.container.Provide(getRenderOptions))

	return b
}

// Decorate replaces a provided type. decorator receives the original
// dependencies and returns the replacement.
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return errors.WithStack(b.container.Decorate(decorator, opts...))
}

// Invoke calls function with its arguments built from the container.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	err := b.container.Invoke(function, opts...)
	return dig.RootCause(err)
}

var defaultBuilder = NewBuilder()

// Invoke is Builder.Invoke on a process-wide builder.
func Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return defaultBuilder.Invoke(function, opts...)
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

func getConfigLoader() (*config.Loader, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return config.NewLoader(configName, configType, os.DirFS(cwd)), nil
}

func getConfig(loader *config.Loader) (*config.Config, error) {
	return loader.Load(".")
}

func getLogger(c *config.Config) (*zap.Logger, error) {
	logger, err := log.New(c.Log)
	if err != nil {
		return nil, err
	}
	log.Set(logger)
	return logger, nil
}

func getRegistry(logger *zap.Logger) *schema.Registry {
	return schema.New(schema.WithLogger(logger))
}

func getGenerator(c *config.Config) (identity.Generator, error) {
	return identity.ByName(c.Identity.Generator)
}

func getCodec(registry *schema.Registry, logger *zap.Logger) *codec.Codec {
	return codec.New(codec.WithRegistry(registry), codec.WithLogger(logger))
}

func getStore(logger *zap.Logger) *store.Store {
	return store.New(schema.NewDocument(), store.WithLogger(logger))
}

func getEditor(s *store.Store, registry *schema.Registry, gen identity.Generator, logger *zap.Logger) *editor.Editor {
	return editor.New(s, registry, editor.WithGenerator(gen), editor.WithLogger(logger))
}

func getRenderOptions(c *config.Config) renderer.Options {
	return renderer.Options{RootBlockID: document.BlockID(c.Render.RootBlockID)}
}
