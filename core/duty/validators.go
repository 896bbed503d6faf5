package duty

import (
	"github.com/go-playground/validator/v10"

	"github.com/stjosephs/hostel/core"
)

func (nd *NewDuty) Validate(validate *validator.Validate) error {
	nd.Name = core.CleanString(nd.Name, true /* lower */)
	nd.Description = core.CleanString(nd.Description)
	return validate.Struct(nd)
}

func (ud *UpdateDuty) Validate(validate *validator.Validate) error {
	if ud.Description != nil {
		desc := core.CleanString(*ud.Description)
		ud.Description = &desc
	}
	return validate.Struct(ud)
}
