package httpshell

import (
	"net/url"
	"strings"
)

// ExtractQuery parses the query component of a raw request target into a flat map.
// Targets without a '?' yield an empty map. Pairs are split on '&' only, so ';'
// is an ordinary character. Repeated keys keep their last value.
// Broken percent escapes are kept as literal text.
func ExtractQuery(target string) map[string]string {
	params := map[string]string{}

	i := strings.IndexByte(target, '?')
	if i < 0 {
		return params
	}
	raw := target[i+1:]
	if j := strings.IndexByte(raw, '#'); j >= 0 {
		raw = raw[:j]
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		params[unescapeQuery(key)] = unescapeQuery(value)
	}
	return params
}

// unescapeQuery decodes '+' and %XX sequences. A '%' that does not start a
// valid escape is left in place.
func unescapeQuery(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if !strings.Contains(s, "%") {
		return s
	}
	if out, err := url.QueryUnescape(s); err == nil {
		return out
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
