package validator

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/isochrone-map/internal/domain"
	"github.com/isochrone-map/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("minutes", validateMinutes)
}

// validateMinutes - список минут через запятую, как его принимает domain.ParseThresholds
func validateMinutes(fl validator.FieldLevel) bool {
	_, err := domain.ParseThresholds(fl.Field().String())
	return err == nil
}

// Validate - валидация структуры; ошибки валидации возвращаются как AppError
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !stderrors.As(err, &vErrs) {
		return errors.ErrInvalidRequest.Wrap(err)
	}

	fields := make(map[string]interface{}, len(vErrs))
	for _, fe := range vErrs {
		fields[fe.Field()] = fe.Tag()
	}

	// координаты проверяются раньше списка минут
	base := errors.ErrInvalidRequest
	if _, ok := fields["Lat"]; ok {
		base = errors.ErrInvalidCoordinates
	} else if _, ok := fields["Lon"]; ok {
		base = errors.ErrInvalidCoordinates
	} else if _, ok := fields["Minutes"]; ok {
		base = errors.ErrInvalidThresholds
	}

	return base.WithDetails(map[string]interface{}{"fields": fields}).Wrap(err)
}
