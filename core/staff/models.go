package staff

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stjosephs/hostel/core/access"
)

// Staff is a hostel staff account. The username doubles as the document key.
type Staff struct {
	Username     string      `json:"username" bson:"_id"`
	FirstName    string      `json:"first_name" bson:"first_name"`
	LastName     string      `json:"last_name" bson:"last_name"`
	Role         access.Role `json:"role" bson:"role"`
	PasswordHash []byte      `json:"-" bson:"password_hash"`
	Active       bool        `json:"active" bson:"active"`
	Present      bool        `json:"present" bson:"present"`
	Scopes       []string    `json:"scopes" bson:"scopes"`
	Image        []byte      `json:"-" bson:"image,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"` // UTC
}

func (s *Staff) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Staff) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

func (s *Staff) HasScope(scope string) bool {
	return access.HasScope(scope, s.Scopes)
}

// NewStaff contains information needed to create a new Staff account.
type NewStaff struct {
	Username        string `json:"username" validate:"required,min=6,alphanum_"`
	FirstName       string `json:"first_name" validate:"required,min=2,max=20"`
	LastName        string `json:"last_name" validate:"required,min=2,max=20"`
	Role            string `json:"role" validate:"required,staffrole"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Image           []byte `json:"-"`
}
