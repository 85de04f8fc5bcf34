package helpers

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"

	"github.com/spycce/SmartTrip/models"
)

// NormalizeEmail lower-cases the address and converts an internationalized domain to
// its ASCII form, so "Bob@Bücher.example" and "bob@xn--bcher-kva.example" are the same user.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", fmt.Errorf("%w: invalid email %q", models.ErrBadRequest, email)
	}
	local, domain := email[:at], email[at+1:]

	asciiDomain, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", fmt.Errorf("%w: invalid email domain %q", models.ErrBadRequest, domain)
	}
	return strings.ToLower(local) + "@" + strings.ToLower(asciiDomain), nil
}
