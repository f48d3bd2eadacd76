package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/qrforge/internal/picker"
	"github.com/alexisbeaulieu97/qrforge/internal/qrgen"
	qrerrors "github.com/alexisbeaulieu97/qrforge/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return strings.ToLower(field.Name)
			}
			return name
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("qr_color", func(fl validator.FieldLevel) bool {
			_, err := picker.ParseColor(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("qr_level", func(fl validator.FieldLevel) bool {
			_, err := qrgen.ParseLevel(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("qr_engine", func(fl validator.FieldLevel) bool {
			return slices.Contains(qrgen.EngineNames(), fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return qrerrors.NewValidationError("", nil, "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	cells := 21 + 2*cfg.Render.Margin
	if cfg.Render.Width < cells {
		return qrerrors.NewValidationError("render.width", nil, fmt.Sprintf("must be at least %d pixels for margin %d", cells, cfg.Render.Margin), nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		return qrerrors.NewValidationError(fieldName(ve), ve.Value(), ruleMessage(ve), err)
	}

	return qrerrors.NewValidationError("", nil, err.Error(), err)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "qr_color":
		return "must be #rgb, #rrggbb, #rrggbbaa or rgba(r, g, b, a)"
	case "qr_level":
		return "must be one of L, M, Q, H"
	case "qr_engine":
		return "must be one of " + strings.Join(qrgen.EngineNames(), ", ")
	case "semver":
		return "must look like 1.0 or 1.2.3"
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}

// fieldName drops the root struct from the namespace, e.g. "Config.render.dark" -> "render.dark".
func fieldName(fe validator.FieldError) string {
	_, rest, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return strings.ToLower(fe.Namespace())
	}
	return rest
}
