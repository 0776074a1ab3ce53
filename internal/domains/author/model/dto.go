package model

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// AuthorResponse is the transport representation of an Author. The id is the
// canonical UUID text and the credential hash is never included.
type AuthorResponse struct {
	ID              string  `json:"id"`
	AvatarURL       string  `json:"avatarUrl"`
	ActivationToken *string `json:"activationToken"`
	Email           string  `json:"email"`
	Username        string  `json:"username"`
}

// ToResponse converts Author entity to AuthorResponse DTO
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:              a.id.String(),
		AvatarURL:       a.avatarURL,
		ActivationToken: a.ActivationToken(),
		Email:           a.email,
		Username:        a.username,
	}
}

func (a *Author) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToResponse())
}

// MarshalZerologObject lets an author be logged with .Object("author", a).
// Secrets (token and hash) are left out.
func (a *Author) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", a.id.String()).
		Str("email", a.email).
		Str("username", a.username).
		Bool("pending_activation", a.HasActivationToken())
}
