package fee

import (
	"github.com/go-playground/validator/v10"

	"madaris/core"
)

var (
	feeTypeTag  = "feetype"
	feeTypeText = "unknown fee type"
)

func init() {
	_ = core.Validate.RegisterValidation(feeTypeTag, feeTypeValidation)
	core.RegisterCustomTranslation(feeTypeTag, feeTypeText)
}

func feeTypeValidation(fl validator.FieldLevel) bool {
	_, ok := typeLabels[fl.Field().String()]
	return ok
}
