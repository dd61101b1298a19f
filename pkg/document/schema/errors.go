package schema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Issue codes that are not validator tags.
const (
	CodeInvalidType = "invalid_type"
	CodeNotAllowed  = "not_allowed"
	CodeMismatch    = "mismatch"
)

// Issue is a single field-addressed problem. Path uses the JSON field
// names of the block, for example data.style.padding.top.
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// ValidationError is returned when a candidate block does not conform
// to its type's schema. It never aborts the caller; the candidate is
// simply discarded.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid block"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "invalid block: " + strings.Join(parts, "; ")
}

// Has reports whether an issue exists at the given path.
func (e *ValidationError) Has(path string) bool {
	for _, issue := range e.Issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func issuesFromValidator(prefix string, err error) []Issue {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Path: prefix, Code: CodeInvalidType, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{
			Path:    joinPath(prefix, trimStructName(fe.Namespace())),
			Code:    fe.Tag(),
			Message: message(fe),
		})
	}
	return issues
}

// trimStructName drops the leading Go type name from a validator namespace.
func trimStructName(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func joinPath(prefix, path string) string {
	if path == "" {
		return prefix
	}
	if prefix == "" {
		return path
	}
	return prefix + "." + path
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "hexcolor6":
		return fmt.Sprintf("%v is not a 6-digit hex color like #RRGGBB", fe.Value())
	case "fontfamily":
		return fmt.Sprintf("%v is not a known font family", fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "min":
		return "must be at least " + fe.Param()
	case "len":
		return fmt.Sprintf("must have exactly %s items", fe.Param())
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
