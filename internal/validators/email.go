package validators

import (
	"errors"
	"net"
	"net/mail"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email address")

// ParseEmail returns the bare address of raw with the domain lowercased.
// Display names ("Parts Co <orders@parts.example>") are accepted.
func ParseEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidEmail
	}

	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || at == len(addr.Address)-1 {
		return "", ErrInvalidEmail
	}
	return addr.Address[:at+1] + strings.ToLower(addr.Address[at+1:]), nil
}

// IsEmailDomainValid reports whether the domain of email has an MX or
// address record.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
