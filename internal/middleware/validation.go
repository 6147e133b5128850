package middleware

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
)

// RegisterValidators installs the domain formats used by request binding
// tags: "clock" for HH:MM wall times and "isodate" for YYYY-MM-DD dates.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	must(v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := model.ParseClock(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.ParseInLocation(model.DateFormat, fl.Field().String(), time.Local)
		return err == nil
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
