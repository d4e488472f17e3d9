package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/vitalit/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return utils.ValidateDate(fl.Field().String())
	})
}

// Struct validates v against its `validate` tags and returns a single
// readable error listing every failed field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid %s", strings.Join(msgs, "; "))
}

// Var validates a single value against a tag expression.
func Var(name string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: %s", name, rule(verrs[0]))
		}
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	return fmt.Sprintf("%s: %s", fe.Namespace(), rule(fe))
}

func rule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " long"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "isodate":
		return "must be a YYYY-MM-DD date"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}
