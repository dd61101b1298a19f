package config

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// Loader finds emailbuilder configuration files in a file system. The
// root file sits at the top of fsys; nested files in directories on
// the way to a document override it.
type Loader struct {
	fsys       fs.FS
	configName string
	configType string
	logger     *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(configName, configType string, fsys fs.FS, opts ...LoaderOption) *Loader {
	if configName == "" {
		panic("config name is not set")
	}

	l := &Loader{
		fsys:       fsys,
		configName: configName,
		configType: configType,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Loader) fileName() string {
	if l.configType == "" {
		return l.configName
	}
	return l.configName + "." + l.configType
}

func (l *Loader) RootConfig() ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, l.fileName())
	if err != nil {
		return nil, ErrRootConfigNotFound
	}
	return data, nil
}

// FindConfigChain returns the contents of the configuration files that
// apply to name, starting with the root one. name can be a directory
// or a file.
func (l *Loader) FindConfigChain(name string) ([][]byte, error) {
	paths, err := l.findConfigFiles(name)
	if err != nil {
		return nil, err
	}

	var result [][]byte
	for _, p := range paths {
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, data)
	}
	return result, nil
}

// Load parses the configuration chain for name. Without any
// configuration file the defaults are returned.
func (l *Loader) Load(name string) (*Config, error) {
	chain, err := l.FindConfigChain(name)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		l.logger.Debug("no configuration files found, using defaults")
		return Default(), nil
	}
	return ParseYAMLChain(chain...)
}

func (l *Loader) findConfigFiles(name string) (result []string, _ error) {
	dir, err := l.dirOf(name)
	if err != nil {
		return nil, err
	}

	fileName := l.fileName()

	if _, err := fs.Stat(l.fsys, fileName); err == nil {
		result = append(result, fileName)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.WithStack(err)
	}

	current := ""
	for _, fragment := range strings.Split(dir, string(filepath.Separator)) {
		if fragment == "." || fragment == "" {
			continue
		}
		// path.Join keeps forward slashes which fs.FS requires.
		current = path.Join(current, fragment)

		candidate := path.Join(current, fileName)
		if _, err := fs.Stat(l.fsys, candidate); err == nil {
			result = append(result, candidate)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithStack(err)
		}
	}

	l.logger.Debug("found config files", zap.String("name", name), zap.Strings("files", result))

	return result, nil
}

func (l *Loader) dirOf(name string) (string, error) {
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(l.fsys, name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get the path info for %q", name)
	}

	if info.IsDir() {
		return filepath.Clean(name), nil
	}
	return filepath.Dir(name), nil
}
