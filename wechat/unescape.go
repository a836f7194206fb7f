package wechat

import (
	"fmt"
	"strconv"
	"strings"
)

// UnescapeText interprets backslash escape sequences embedded in s,
// returning the decoded text. Upstream producers hand the relay article
// text with literal \uXXXX and \n sequences baked in; the draft endpoint
// expects them resolved. Text without a backslash is returned as-is, so
// the transform is idempotent on already-decoded input.
//
// Malformed sequences (truncated \u, bad hex digits, a trailing backslash)
// are a decoding error, not a silent passthrough.
func UnescapeText(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		if s[0] != '\\' {
			i := strings.IndexByte(s, '\\')
			if i < 0 {
				b.WriteString(s)
				break
			}
			b.WriteString(s[:i])
			s = s[i:]
			continue
		}
		// strconv rejects \' and \" outside their quote context; both are
		// legitimate in article text.
		if strings.HasPrefix(s, `\'`) {
			b.WriteByte('\'')
			s = s[2:]
			continue
		}
		if strings.HasPrefix(s, `\"`) {
			b.WriteByte('"')
			s = s[2:]
			continue
		}
		c, _, rest, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			return "", fmt.Errorf("invalid escape sequence near %q: %w", head(s, 8), err)
		}
		b.WriteRune(c)
		s = rest
	}
	return b.String(), nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
