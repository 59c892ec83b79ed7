package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Registration email rule: restricted local part, dotted domain, 2-4
// letter top-level label. Stricter than the generic "email" tag on purpose.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's shared
// validator engine. Safe to call from both main and tests.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)

		if !ok {
			return
		}

		_ = v.RegisterValidation("calemail", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
	})
}
