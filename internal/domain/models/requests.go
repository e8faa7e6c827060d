package models

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
)

// CreateTripRequest is the requester-supplied part of a trip.
type CreateTripRequest struct {
	Origin         string     `json:"origin" validate:"required,max=255"`
	Destination    string     `json:"destination" validate:"required,max=255"`
	Purpose        string     `json:"purpose" validate:"required,max=500"`
	DepartureAt    time.Time  `json:"departureAt" validate:"required"`
	ReturnAt       *time.Time `json:"returnAt"`
	PassengerCount int        `json:"passengerCount" validate:"min=1,max=60"`
	VehicleType    string     `json:"vehicleType" validate:"max=50"`
	CostCenter     string     `json:"costCenter" validate:"max=50"`
	Notes          string     `json:"notes" validate:"max=2000"`
}

type AllocateRequest struct {
	VehicleID *int64 `json:"vehicleId"`
	DriverID  *int64 `json:"driverId"`
	Version   *int64 `json:"version,omitempty"`
}

type StatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version *int64 `json:"version,omitempty"`
}

type KMInitialRequest struct {
	KMInitial KMValue `json:"km_inicial"`
}

type KMFinalRequest struct {
	KMFinal KMValue `json:"km_final"`
}

type CreateCaronaRequest struct {
	PassengerName string `json:"passengerName" validate:"required,max=255"`
	Seats         int    `json:"seats" validate:"min=1,max=10"`
	Reason        string `json:"reason" validate:"max=1000"`
}

type CreateEvaluationRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks struct tags and converts the first failure into a
// domain.ValidationError with a Portuguese message.
func Validate(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ValidationError{Msg: "dados inválidos", Err: err}
	}
	fe := verrs[0]
	return domain.ValidationError{Field: fe.Field(), Msg: fieldMessage(fe), Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório: " + fe.Field()
	case "email":
		return "E-mail inválido."
	case "min":
		return "Valor abaixo do mínimo para " + fe.Field() + " (" + fe.Param() + ")."
	case "max":
		return "Valor acima do máximo para " + fe.Field() + " (" + fe.Param() + ")."
	default:
		return "Valor inválido para " + fe.Field() + "."
	}
}
