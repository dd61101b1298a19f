package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the emailbuilder CLI, read from
// emailbuilder.yaml files.
type Config struct {
	Version  string         `yaml:"version" validate:"required"`
	Log      ConfigLog      `yaml:"log"`
	Render   ConfigRender   `yaml:"render"`
	Share    ConfigShare    `yaml:"share"`
	Identity ConfigIdentity `yaml:"identity"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

type ConfigRender struct {
	// RootBlockID is the block rendered by default.
	RootBlockID string `yaml:"rootBlockId" validate:"required"`
	Mode        string `yaml:"mode" validate:"oneof=html interactive"`
}

type ConfigShare struct {
	BaseURL string `yaml:"baseUrl" validate:"omitempty,url"`
}

type ConfigIdentity struct {
	Generator string `yaml:"generator" validate:"oneof=ulid sequential"`
}

// ParseYAML parses a single configuration on top of the defaults.
func ParseYAML(data []byte) (*Config, error) {
	return parseYAML(data)
}

// ParseYAMLChain parses configurations in order; later ones override
// fields set by earlier ones.
func ParseYAMLChain(chain ...[]byte) (*Config, error) {
	return parseYAML(chain...)
}

func parseYAML(chain ...[]byte) (*Config, error) {
	cfg := Default()

	for _, data := range chain {
		version, err := parseVersionFromYAML(data)
		if err != nil {
			return nil, err
		}

		switch version {
		case "v1alpha1":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "failed to parse v1alpha1 config")
			}
		default:
			return nil, errors.Errorf("unknown version: %q", version)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to validate v1alpha1 config")
	}

	return cfg, nil
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		msg := path + ": failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
		messages = append(messages, msg)
	}

	return errors.New(strings.Join(messages, "; "))
}
