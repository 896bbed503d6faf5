package attendance

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/stjosephs/hostel/core"
)

var (
	activityTag  = "activity"
	activityText = "must be one of: breakfast, supper, church, afternoon-study, evening-study"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(activityTag, activityValidation)
	core.RegisterCustomTranslation(validate, translator, activityTag, activityText)
}

func activityValidation(fl validator.FieldLevel) bool {
	return ValidActivity(Activity(fl.Field().String()))
}
