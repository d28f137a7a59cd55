package jsonproto

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/idna"
)

// FormatValidator reports whether s satisfies a named format.
type FormatValidator func(s string) bool

// Formats is the closed set of built-in format validators selectable via
// Format("name"), condensed to rely on the standard library where it
// already implements the relevant RFC instead of hand-rolling a parser.
var Formats = map[string]FormatValidator{
	"date-time":    IsDateTime,
	"date":         IsDate,
	"time":         IsTime,
	"duration":     IsDuration,
	"hostname":     IsHostname,
	"idn-hostname": IsIDNHostname,
	"email":        IsEmail,
	"ipv4":         IsIPv4,
	"ipv6":         IsIPv6,
	"uri":          IsURI,
	"uuid":         IsUUID,
	"regex":        IsRegex,
}

func IsDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func IsTime(s string) bool {
	_, err := time.Parse("15:04:05Z07:00", s)
	if err == nil {
		return true
	}
	_, err = time.Parse("15:04:05", s)
	return err == nil
}

var durationPattern = regexp.MustCompile(`^P(?:\d+Y)?(?:\d+M)?(?:\d+D)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?$`)

func IsDuration(s string) bool {
	if s == "" || s == "P" {
		return false
	}
	return durationPattern.MatchString(s)
}

func IsHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		n := len(label)
		if n < 1 || n > 63 {
			return false
		}
		if label[0] == '-' || label[n-1] == '-' {
			return false
		}
		for _, c := range label {
			isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
			if !isAlnum {
				return false
			}
		}
	}
	return true
}

// IsIDNHostname reports whether s is a valid internationalized hostname,
// converting its Unicode labels to their ASCII (punycode) form under the
// IDNA2008 profile before applying the same length/character rules as
// IsHostname.
func IsIDNHostname(s string) bool {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(s, "."))
	if err != nil {
		return false
	}
	return IsHostname(ascii)
}

func IsEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if len(local) == 0 || len(local) > 64 {
		return false
	}
	if !IsHostname(domain) && !IsIPv4(domain) {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

func IsIPv4(s string) bool {
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil || n < 0 || n > 255 {
			return false
		}
		if n != 0 && g[0] == '0' {
			return false
		}
	}
	return true
}

func IsIPv6(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

func IsURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

func IsRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}
