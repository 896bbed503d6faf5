package staff

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
)

var (
	staffRoleTag  = "staffrole"
	staffRoleText = "must be one of: jr-matron, sr-matron, chief-matron, super-user"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(staffRoleTag, staffRoleValidation)
	core.RegisterCustomTranslation(validate, translator, staffRoleTag, staffRoleText)
}

func staffRoleValidation(fl validator.FieldLevel) bool {
	return access.ValidRole(access.Role(fl.Field().String()))
}

func (ns *NewStaff) Validate(validate *validator.Validate) error {
	ns.Username = core.CleanString(ns.Username, true /* lower */)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Role = core.CleanString(ns.Role, true /* lower */)
	return validate.Struct(ns)
}
