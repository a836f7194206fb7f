package wechat

import (
	"strings"
	"testing"
)

func TestUnescapeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain passthrough", "A Quiet Title", "A Quiet Title"},
		{"already decoded html", "<p>café</p>", "<p>café</p>"},
		{"unicode escape", `caf\u00e9`, "café"},
		{"newline and tab", `line one\nline\ttwo`, "line one\nline\ttwo"},
		{"escaped backslash", `C:\\temp`, `C:\temp`},
		{"escaped quotes", `she said \"hi\" and \'bye\'`, `she said "hi" and 'bye'`},
		{"mixed", `<p>\u4f60\u597d</p>\n`, "<p>你好</p>\n"},
		{"empty", "", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := UnescapeText(c.in)
			if err != nil {
				t.Fatalf("UnescapeText(%q) error: %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("UnescapeText(%q) = %q; want %q", c.in, got, c.want)
			}
		})
	}
}

func TestUnescapeTextMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"truncated unicode", `title \u00`},
		{"bad hex digits", `title \uzzzz`},
		{"trailing backslash", `title \`},
		{"truncated hex", `body \x9`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := UnescapeText(c.in); err == nil {
				t.Fatalf("UnescapeText(%q) succeeded; want decoding error", c.in)
			} else if !strings.Contains(err.Error(), "invalid escape sequence") {
				t.Fatalf("UnescapeText(%q) error = %v; want invalid escape sequence", c.in, err)
			}
		})
	}
}

func TestUnescapeTextIdempotent(t *testing.T) {
	once, err := UnescapeText(`caf\u00e9 with a\nbreak`)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := UnescapeText(once)
	if err != nil {
		t.Fatalf("second pass error: %v", err)
	}
	if twice != once {
		t.Fatalf("second pass changed text: %q -> %q", once, twice)
	}
}
