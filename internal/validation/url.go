// Package validation normalizes user-supplied feed addresses.
package validation

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
)

var (
	ErrEmptyURL    = errors.New("URL cannot be empty")
	ErrURLTooLong  = errors.New("URL too long")
	ErrBadScheme   = errors.New("URL must use http or https")
	ErrMissingHost = errors.New("URL must have a hostname")
	ErrPrivateHost = errors.New("local and private addresses are not permitted")
)

const defaultMaxLength = 2048

// SourceValidator checks feed source addresses read from the sources file.
type SourceValidator struct {
	// AllowPrivateHosts permits localhost, loopback and private ranges,
	// which is what self-hosted feeds need.
	AllowPrivateHosts bool
	MaxLength         int
}

func NewSourceValidator(allowPrivate bool) *SourceValidator {
	return &SourceValidator{
		AllowPrivateHosts: allowPrivate,
		MaxLength:         defaultMaxLength,
	}
}

// Normalize validates raw and returns its canonical form. A missing scheme
// defaults to https.
func (v *SourceValidator) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}
	maxLen := v.MaxLength
	if maxLen <= 0 {
		maxLen = defaultMaxLength
	}
	if len(raw) > maxLen {
		return "", fmt.Errorf("%w (max %d characters)", ErrURLTooLong, maxLen)
	}
	if strings.ContainsAny(raw, "<>\"'` ") {
		return "", fmt.Errorf("URL contains invalid characters: %q", raw)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrBadScheme
	}
	if u.Hostname() == "" {
		return "", ErrMissingHost
	}
	u.Host = strings.ToLower(u.Host)

	if !v.AllowPrivateHosts && isPrivateHost(u.Hostname()) {
		return "", fmt.Errorf("%w: %s", ErrPrivateHost, u.Hostname())
	}

	return u.String(), nil
}

// HostLabel returns the host of a normalized URL, used as the display name
// for sources given as bare addresses.
func HostLabel(normalized string) string {
	u, err := url.Parse(normalized)
	if err != nil || u.Hostname() == "" {
		return normalized
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func isPrivateHost(hostname string) bool {
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	addr, err := netip.ParseAddr(hostname)
	if err != nil {
		return false
	}
	ip := net.IP(addr.AsSlice())
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
