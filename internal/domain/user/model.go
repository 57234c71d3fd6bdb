package user

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Account is the signed-in identity carried by an auth session. It is not
// linked to a directory Member.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

var nameSeparators = regexp.MustCompile(`[._-]`)

// NewAccount builds the mock identity the login endpoint returns for email.
// The display name is the local part with separators turned into spaces,
// each word capitalized.
func NewAccount(email string, now time.Time) Account {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	words := strings.Fields(nameSeparators.ReplaceAllString(local, " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return Account{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.Join(words, " "),
		Avatar:    AvatarURL(local),
		CreatedAt: now,
	}
}

// AvatarURL returns a generated initials avatar for name.
func AvatarURL(name string) string {
	v := url.Values{}
	v.Set("name", name)
	v.Set("background", "3b82f6")
	v.Set("color", "fff")
	v.Set("size", "128")
	return "https://ui-avatars.com/api/?" + v.Encode()
}

// Member is a team directory entry.
type Member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Avatar   *string   `json:"avatar,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CreateInput describes a new directory entry. Avatar is optional.
type CreateInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Patch carries the fields of a partial update.
type Patch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Role   *string `json:"role,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}
