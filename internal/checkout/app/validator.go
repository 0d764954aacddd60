package app

import (
	"fmt"
	"regexp"

	"github.com/dwikikusuma/cart-sync/internal/checkout/domain"
)

// Field rules carried over from the checkout form: names, address, and city
// check a valid prefix; only the email is anchored end to end.
var (
	nameRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z\s-]*`)
	addressRe = regexp.MustCompile(`^\d+[A-Za-z\s-]+`)
	emailRe   = regexp.MustCompile(`(?i)^(([^<>()\[\].,;:\s@"]+(\.[^<>()\[\].,;:\s@"]+)*)|(".+"))@(([^<>()\[\].,;:\s@"]+\.)+[^<>()\[\].,;:\s@"]{2,})$`)
)

// ContactError reports which contact field failed validation and why.
type ContactError struct {
	Field   string
	Explain string
}

func (e *ContactError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Explain)
}

// ValidateContact checks every contact field and returns the first failure.
func ValidateContact(c domain.Contact) error {
	checks := []struct {
		field   string
		value   string
		re      *regexp.Regexp
		explain string
	}{
		{"firstName", c.FirstName, nameRe, "must start with a letter and contain letters, blank space, or dash only"},
		{"lastName", c.LastName, nameRe, "must start with a letter and contain letters, blank space, or dash only"},
		{"address", c.Address, addressRe, "must start with some digits and contain letters, blank space, or dash only"},
		{"city", c.City, nameRe, "must start with a letter and contain letters, blank space, or dash only"},
		{"email", c.Email, emailRe, "must be a valid email"},
	}

	for _, chk := range checks {
		if !chk.re.MatchString(chk.value) {
			return &ContactError{Field: chk.field, Explain: chk.explain}
		}
	}
	return nil
}
