// Package schema validates blocks against their type and provides the
// default values used when a block is inserted.
package schema

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/pkg/document"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Registry struct {
	validate *validator.Validate
	logger   *zap.Logger
}

type Option func(*Registry)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

func New(opts ...Option) *Registry {
	r := &Registry{
		validate: NewValidator(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewValidator returns a validator that reports JSON field names and
// knows the hexcolor6 and fontfamily rules.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration fails only for empty tags or nil funcs.
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("fontfamily", func(fl validator.FieldLevel) bool {
		return document.FontFamily(fl.Field().String()).Valid()
	})

	return v
}

// Validate checks a candidate block. It returns nil or a
// *ValidationError listing every problem found.
func (r *Registry) Validate(block document.Block) error {
	var issues []Issue

	if !block.Type.Valid() {
		issues = append(issues, Issue{Path: "type", Code: CodeInvalidType, Message: "unknown block type"})
		return r.fail(block, issues)
	}

	if props := block.Data.Props; props != nil {
		if props.BlockType() != block.Type {
			issues = append(issues, Issue{
				Path:    "data.props",
				Code:    CodeMismatch,
				Message: "props of " + props.BlockType().String() + " attached to " + block.Type.String(),
			})
		} else if err := r.validate.Struct(props); err != nil {
			issues = append(issues, issuesFromValidator("data.props", err)...)
		}
	}

	if style := block.Data.Style; style != nil {
		allowed := make(map[string]bool)
		for _, name := range StyleShape(block.Type) {
			allowed[name] = true
		}
		for _, name := range style.Fields() {
			if !allowed[name] {
				issues = append(issues, Issue{
					Path:    "data.style." + name,
					Code:    CodeNotAllowed,
					Message: "not supported by " + block.Type.String(),
				})
			}
		}
		if err := r.validate.Struct(style); err != nil {
			issues = append(issues, issuesFromValidator("data.style", err)...)
		}
	}

	if len(issues) > 0 {
		return r.fail(block, issues)
	}
	return nil
}

func (r *Registry) fail(block document.Block, issues []Issue) error {
	r.logger.Debug("block failed validation", zap.Stringer("type", block.Type), zap.Int("issues", len(issues)))
	return &ValidationError{Issues: issues}
}

// Update is the update path used by editing surfaces: shallow-merge the
// patches over block and validate the result. On failure the candidate
// is discarded and only the error is returned.
func (r *Registry) Update(block document.Block, propsPatch, stylePatch map[string]any) (document.Block, error) {
	candidate, err := Merge(block, propsPatch, stylePatch)
	if err != nil {
		return document.Block{}, err
	}
	if err := r.Validate(candidate); err != nil {
		return document.Block{}, err
	}
	return candidate, nil
}

// StyleShape returns the JSON names of the style fields a block type
// accepts. Types that are styled through props return nil.
func StyleShape(t document.BlockType) []string {
	switch t {
	case document.TextBlockType, document.HeadingBlockType, document.HTMLBlockType:
		return []string{"color", "backgroundColor", "fontFamily", "fontSize", "fontWeight", "textAlign", "padding"}
	case document.ButtonBlockType:
		return []string{"backgroundColor", "fontFamily", "fontSize", "fontWeight", "textAlign", "padding"}
	case document.ImageBlockType:
		return []string{"backgroundColor", "textAlign", "padding"}
	case document.AvatarBlockType:
		return []string{"textAlign", "padding"}
	case document.DividerBlockType, document.ColumnsContainerBlockType:
		return []string{"backgroundColor", "padding"}
	case document.SpacerBlockType:
		return []string{"backgroundColor"}
	case document.ContainerBlockType:
		return []string{"backgroundColor", "borderColor", "borderRadius", "padding"}
	case document.EmailLayoutBlockType:
		return nil
	default:
		return nil
	}
}
