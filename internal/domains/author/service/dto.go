package service

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/MarshaBat/object-oriented/internal/domains/author/model"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// RegisterRequest carries the plaintext fields of a new account
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, validation.Length(0, model.MaxEmailLength), is.EmailFormat),
		validation.Field(&r.Username, validation.Required, validation.Length(1, model.MaxUsernameLength)),
		validation.Field(&r.Password, passwordRules...),
		validation.Field(&r.AvatarURL, validation.Length(0, model.MaxAvatarURLLength), is.URL),
	)
}

var passwordRules = []validation.Rule{
	validation.Required,
	validation.Length(MinPasswordLength, MaxPasswordLength),
}
