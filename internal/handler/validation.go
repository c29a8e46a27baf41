package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/isabeauty/agenda-api/internal/model"
)

// RegisterValidators installs the booking-specific binding validators on the
// gin validator engine: `isodate` for calendar dates and `slot` for the
// fixed hourly slots.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return model.ValidDate(fl.Field().String())
	})
	v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
		return model.ValidSlot(fl.Field().String())
	})
}
