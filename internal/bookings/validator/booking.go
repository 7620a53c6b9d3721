package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"hallbooking/pkg/logger"
	"hallbooking/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// AdmissionKey extracts and validates the fields the admission check needs.
// Every other field of doc is left untouched.
func (v *BookingValidator) AdmissionKey(doc model.Document) (*model.AdmissionKey, error) {
	var key model.AdmissionKey
	var errs ValidationErrors

	roomID, err := doc.Int(model.FieldRoomID)
	if err != nil {
		errs = append(errs, ValidationError{Field: model.FieldRoomID, Message: "room_id must be an integer"})
	}
	key.RoomID = roomID

	date, err := doc.Int(model.FieldDate)
	if err != nil {
		errs = append(errs, ValidationError{Field: model.FieldDate, Message: "date must be an integer"})
	}
	key.Date = date

	if len(errs) > 0 {
		return nil, errs
	}

	if err := v.validate.Struct(&key); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, v.translateValidationErrors(validationErrs)
		}
		return nil, err
	}

	return &key, nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
