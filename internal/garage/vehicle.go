package garage

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/garage-planner/internal/common"
)

// platePattern accepts old (ABC1234) and Mercosul (ABC1D23) Brazilian plates.
var platePattern = regexp.MustCompile(`^[A-Za-z]{3}[0-9][A-Za-z0-9][0-9]{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		return platePattern.MatchString(fl.Field().String())
	})
	return v
}

// Vehicle is one car registered in the garage. Plate is its identity.
type Vehicle struct {
	Plate string `json:"plate" validate:"required,plate"`
	Model string `json:"model" validate:"required"`
	Make  string `json:"make" validate:"required"`
	Year  int    `json:"year" validate:"required,min=1886,max=2100"`
	Color string `json:"color" validate:"required"`
}

// ID returns the vehicle identifier, the normalized plate.
func (v Vehicle) ID() string {
	return v.Plate
}

// NormalizePlate trims and uppercases a plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// NewVehicle validates and normalizes user input into a Vehicle.
func NewVehicle(plate, model, maker string, year int, color string) (Vehicle, error) {
	// Clone so a stored vehicle never aliases a caller's request buffer.
	v := Vehicle{
		Plate: strings.Clone(NormalizePlate(plate)),
		Model: strings.Clone(strings.TrimSpace(model)),
		Make:  strings.Clone(strings.TrimSpace(maker)),
		Year:  year,
		Color: strings.Clone(strings.TrimSpace(color)),
	}
	if err := validate.Struct(v); err != nil {
		return Vehicle{}, toValidationError(err)
	}
	return v, nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &common.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, common.FieldError{
			Field:  strings.ToLower(fe.Field()),
			Reason: reason(fe),
		})
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "plate":
		return "invalid plate format"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
