package service

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "MX"
)

// Contact validation errors surfaced to handlers.
var (
	ErrInvalidPhone   = errors.New("invalid phone number")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidWebsite = errors.New("invalid website url")
)

// ContactValidator normalizes the contact fields a business publishes.
type ContactValidator struct {
	DefaultRegion string
}

// NewContactValidator builds a validator for the given default phone region.
func NewContactValidator(defaultRegion string) *ContactValidator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactValidator{DefaultRegion: region}
}

// NormalizePhone parses a phone number and returns it in E.164 format.
func (v *ContactValidator) NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}
	number, err := phonenumbers.Parse(raw, v.DefaultRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// NormalizeEmail lowercases an email address and validates its domain.
func (v *ContactValidator) NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	parts := strings.SplitN(email, "@", 2)
	domain := parts[1]
	if !isDomainValid(domain) {
		return "", ErrInvalidEmail
	}
	if ascii, err := idnaProfile.ToASCII(domain); err != nil || ascii == "" {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizeWebsite canonicalizes a website URL: https scheme, punycoded
// host, tracking query parameters removed.
func (v *ContactValidator) NormalizeWebsite(raw string) (string, error) {
	u, err := sanitizeURL(raw)
	if err != nil {
		return "", ErrInvalidWebsite
	}
	host := strings.ToLower(strings.Trim(u.Hostname(), "."))
	if !isDomainValid(host) {
		return "", ErrInvalidWebsite
	}
	ascii, err := idnaProfile.ToASCII(host)
	if err != nil || ascii == "" {
		return "", ErrInvalidWebsite
	}
	if port := u.Port(); port != "" {
		u.Host = ascii + ":" + port
	} else {
		u.Host = ascii
	}
	stripTracking(u)
	return u.String(), nil
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
