package validation

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrInvalidURL wraps every rejection so callers can branch on it.
var ErrInvalidURL = errors.New("invalid URL")

// URLValidator checks URLs the app fetches (feeds, the contact endpoint) or
// hands to an external player.
type URLValidator struct {
	// AllowLocalhost permits localhost and loopback hosts.
	AllowLocalhost bool
	// AllowPrivateIPs permits private and link-local addresses.
	AllowPrivateIPs bool
	MaxLength       int
}

// NewURLValidator blocks local and private hosts. Use it for URLs that come
// from remote content, such as video enclosures in an imported feed.
func NewURLValidator() *URLValidator {
	return &URLValidator{MaxLength: 2048}
}

// NewPermissiveURLValidator allows local development hosts. Use it for URLs
// the user configured.
func NewPermissiveURLValidator() *URLValidator {
	return &URLValidator{AllowLocalhost: true, AllowPrivateIPs: true, MaxLength: 2048}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidURL, fmt.Sprintf(format, args...))
}

// ValidateAndNormalize returns the normalized URL. Input without a scheme
// gets https://; any scheme other than http or https is rejected.
func (v *URLValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return "", invalid("empty")
	case v.MaxLength > 0 && len(input) > v.MaxLength:
		return "", invalid("longer than %d characters", v.MaxLength)
	case strings.HasPrefix(input, "-"):
		// Would be read as a flag by the player.
		return "", invalid("starts with '-'")
	case strings.ContainsAny(input, "<>\"'` \t\r\n"):
		return "", invalid("contains forbidden characters")
	}

	if !strings.Contains(input, "://") {
		input = "https://" + input
	}
	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", invalid("scheme %q not allowed", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", invalid("missing host")
	}
	if u.User != nil {
		return "", invalid("credentials in URL")
	}
	if err := v.checkHost(u.Hostname()); err != nil {
		return "", err
	}
	if strings.Contains(u.Path, "..") {
		return "", invalid("path traversal")
	}
	return u.String(), nil
}

func (v *URLValidator) checkHost(host string) error {
	if !v.AllowLocalhost && isLocalhost(host) {
		return invalid("localhost not permitted")
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil
	}
	if ip.IsUnspecified() || ip.Equal(net.IPv4bcast) {
		return invalid("address %s not permitted", host)
	}
	if !v.AllowPrivateIPs && isPrivateIP(ip) {
		return invalid("private address %s not permitted", host)
	}
	return nil
}

func isLocalhost(host string) bool {
	host = strings.ToLower(host)
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// MediaURL validates a URL about to be passed to a media player.
func MediaURL(raw string) (string, error) {
	return NewPermissiveURLValidator().ValidateAndNormalize(raw)
}
