package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/azur-14/bookworm/model"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Status enums used in DTO tags across both services.
	_ = v.RegisterValidation("copystatus", func(fl validator.FieldLevel) bool {
		return model.ValidCopyStatus(model.CopyStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("borrowstatus", func(fl validator.FieldLevel) bool {
		return model.ValidBorrowStatus(model.BorrowStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("returnstatus", func(fl validator.FieldLevel) bool {
		return model.ValidReturnStatus(model.ReturnStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("roomstatus", func(fl validator.FieldLevel) bool {
		return model.ValidRoomBookingStatus(model.RoomBookingStatus(fl.Field().String()))
	})

	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Instance exposes the underlying validator so controllers share the
// custom tag registrations.
func (v *Validator) Instance() *validator.Validate {
	return v.v
}
