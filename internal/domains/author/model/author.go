package model

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/MarshaBat/object-oriented/pkg/password"
)

// Constants for validation
const (
	MaxAvatarURLLength    = 255
	ActivationTokenLength = 32
	MaxEmailLength        = 128
	CredentialHashLength  = 97
	MaxUsernameLength     = 32
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	markupPattern   = regexp.MustCompile(`<[^>]*>`)
)

// Author is one row of the author table. Every mutator validates its input and
// leaves the author unchanged when it returns an error, so an Author is never
// observable half-valid.
type Author struct {
	id              uuid.UUID
	avatarURL       string
	activationToken *string
	email           string
	hash            string
	username        string

	hashes password.Describer
}

// Option configures an Author before its fields are validated.
type Option func(*Author)

// WithHashDescriber replaces the capability used to identify the algorithm of
// a credential hash. The default accepts argon2i only.
func WithHashDescriber(d password.Describer) Option {
	return func(a *Author) {
		if d != nil {
			a.hashes = d
		}
	}
}

// New validates all six fields in table order and returns the author, or the
// first validation error wrapped with the failing field.
func New[T IDSource](
	id T,
	avatarURL string,
	activationToken *string,
	email string,
	credentialHash string,
	username string,
	opts ...Option,
) (*Author, error) {
	a := &Author{}
	for _, opt := range opts {
		opt(a)
	}

	parsed, err := ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("author id: %w", err)
	}
	a.id = parsed

	if err := a.SetAvatarURL(avatarURL); err != nil {
		return nil, fmt.Errorf("author avatar url: %w", err)
	}
	if err := a.SetActivationToken(activationToken); err != nil {
		return nil, fmt.Errorf("author activation token: %w", err)
	}
	if err := a.SetEmail(email); err != nil {
		return nil, fmt.Errorf("author email: %w", err)
	}
	if err := a.SetCredentialHash(credentialHash); err != nil {
		return nil, fmt.Errorf("author hash: %w", err)
	}
	if err := a.SetUsername(username); err != nil {
		return nil, fmt.Errorf("author username: %w", err)
	}

	return a, nil
}

func (a *Author) ID() uuid.UUID {
	return a.id
}

// SetID replaces the identifier.
func (a *Author) SetID(id uuid.UUID) error {
	parsed, err := ParseID(id)
	if err != nil {
		return err
	}
	a.id = parsed
	return nil
}

// SetIDString replaces the identifier with the UUID written in canonical form.
func (a *Author) SetIDString(id string) error {
	parsed, err := ParseID(id)
	if err != nil {
		return err
	}
	a.id = parsed
	return nil
}

// AvatarURL returns "" when the author has no avatar.
func (a *Author) AvatarURL() string {
	return a.avatarURL
}

// SetAvatarURL trims the value, drops markup and every character outside the
// URL allow-list (quotes are kept as-is), then enforces the 255 byte ceiling.
func (a *Author) SetAvatarURL(avatarURL string) error {
	sanitized := sanitizeAvatarURL(avatarURL)
	if len(sanitized) > MaxAvatarURLLength {
		return fmt.Errorf("%w: avatar url must be at most %d bytes", ErrValueTooLong, MaxAvatarURLLength)
	}
	a.avatarURL = sanitized
	return nil
}

// ActivationToken returns a copy of the token, or nil when absent.
func (a *Author) ActivationToken() *string {
	if a.activationToken == nil {
		return nil
	}
	token := *a.activationToken
	return &token
}

// HasActivationToken reports whether an activation is still pending.
func (a *Author) HasActivationToken() bool {
	return a.activationToken != nil
}

// SetActivationToken clears the token when passed nil; otherwise the token is
// lower-cased and trimmed and must be exactly 32 hexadecimal characters.
func (a *Author) SetActivationToken(token *string) error {
	if token == nil {
		a.activationToken = nil
		return nil
	}

	normalized := strings.ToLower(strings.TrimSpace(*token))
	if err := validation.Validate(normalized, validation.Required, is.Hexadecimal); err != nil {
		return fmt.Errorf("%w: must be hexadecimal: %v", ErrInvalidToken, err)
	}
	if len(normalized) != ActivationTokenLength {
		return fmt.Errorf("%w: must be %d characters, got %d", ErrInvalidToken, ActivationTokenLength, len(normalized))
	}

	a.activationToken = &normalized
	return nil
}

func (a *Author) Email() string {
	return a.email
}

// SetEmail stores the trimmed address once it is well formed and fits in 128 bytes.
func (a *Author) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	err := validation.Validate(email,
		validation.Required,
		is.EmailFormat,
		validation.By(domainHasDot),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("%w: email must be at most %d bytes", ErrValueTooLong, MaxEmailLength)
	}

	a.email = email
	return nil
}

// CredentialHash returns the encoded hash verbatim. It is never a plaintext password.
func (a *Author) CredentialHash() string {
	return a.hash
}

// SetCredentialHash accepts an already-encoded hash of the designated
// algorithm. No hashing happens here.
func (a *Author) SetCredentialHash(hash string) error {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return ErrEmptyOrInsecureHash
	}
	hashes := a.describer()
	if algorithm, want := hashes.Describe(hash), hashes.Designated(); algorithm != want {
		return fmt.Errorf("%w: got %s, want %s", ErrUnsupportedAlgorithm, algorithm, want)
	}
	if len(hash) != CredentialHashLength {
		return fmt.Errorf("%w: must be %d characters, got %d", ErrWrongHashLength, CredentialHashLength, len(hash))
	}

	a.hash = hash
	return nil
}

// describer falls back to the argon2i policy so a zero Author is usable.
func (a *Author) describer() password.Describer {
	if a.hashes == nil {
		return password.Policy{}
	}
	return a.hashes
}

func (a *Author) Username() string {
	return a.username
}

// SetUsername accepts 1 to 32 characters from [A-Za-z0-9_-] after trimming.
func (a *Author) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	err := validation.Validate(username,
		validation.Required,
		validation.Length(1, MaxUsernameLength),
		validation.Match(usernamePattern).Error("must contain only letters, digits, '_' or '-'"),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUsername, err)
	}

	a.username = username
	return nil
}

func sanitizeAvatarURL(raw string) string {
	stripped := markupPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.Map(func(r rune) rune {
		if isURLRune(r) {
			return r
		}
		return -1
	}, stripped)
}

// isURLRune is the avatar URL allow-list: visible ASCII minus the characters
// that are unsafe in markup or never valid in a URL.
func isURLRune(r rune) bool {
	if r < 0x21 || r > 0x7e {
		return false
	}
	switch r {
	case '<', '>', '`', '\\', '^', '{', '|', '}':
		return false
	}
	return true
}

func domainHasDot(value interface{}) error {
	email, _ := value.(string)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return validation.NewError("validation_email_domain", "must contain a domain")
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return validation.NewError("validation_email_domain", "domain must contain a dot")
	}
	return nil
}
