package learner

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
)

var (
	blockTag  = "block"
	blockText = "must be one of: A, B, C, D"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(blockTag, blockValidation)
	core.RegisterCustomTranslation(validate, translator, blockTag, blockText)
}

func blockValidation(fl validator.FieldLevel) bool {
	return access.ValidBlock(access.Block(fl.Field().String()))
}

func (nl *NewLearner) Validate(validate *validator.Validate) error {
	nl.FirstName = core.CleanString(nl.FirstName)
	nl.LastName = core.CleanString(nl.LastName)
	nl.Block = strings.ToUpper(core.CleanString(nl.Block))
	if err := validate.Struct(nl); err != nil {
		return err
	}
	if !GradeAllowedInBlock(access.Block(nl.Block), nl.Grade) {
		return core.NewValidationError(
			fmt.Errorf("learner in grade %d cannot be in block %s", nl.Grade, nl.Block),
			core.FieldError{Field: "grade", Error: fmt.Sprintf("grade %d not allowed in block %s", nl.Grade, nl.Block)},
		)
	}
	return nil
}
