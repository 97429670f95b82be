package validator

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/geogrid-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("grid_bounds", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "viewport", "collar", "none":
			return true
		}
		return false
	})
}

// Validate - валидация структуры. Ошибки валидатора превращаются в ErrInvalidRequest
// с перечнем полей в деталях.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(fields)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// fieldPath отрезает имя корневой структуры: "BuildRequest.Viewport.TopLeft" -> "Viewport.TopLeft"
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
