package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

var registerOnce sync.Once

// Register installs the custom tags on gin's validator engine and makes
// validation errors report JSON field names. Safe to call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err = v.RegisterValidation("couponcode", func(fl validator.FieldLevel) bool {
			_, normErr := NormalizeCouponCode(fl.Field().String())
			return normErr == nil
		}); err != nil {
			return
		}

		err = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
			return types.IsKnownPermission(fl.Field().String())
		})
	})
	return err
}

// FieldErrors converts validator errors into a map keyed by JSON field name.
// It returns nil when err is not a validation failure.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = describe(fe)
	}
	return fields
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "couponcode":
		return "must be 3-32 letters, digits, hyphens or underscores"
	case "permission":
		return fmt.Sprintf("must be one of [%s]", strings.Join(types.KnownPermissions, " "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
