package safety

import (
	"strings"
	"testing"
)

func TestCheckURL(t *testing.T) {
	tests := []struct {
		url    string
		wantOK bool
	}{
		{"http://example.com", true},
		{"https://example.com/a?b=c", true},
		{"mailto:user@example.com", true},
		{"ftp://host/file", true},
		{"tel:+1234567890", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"", true},
		{"#fragment", true},
		{"/absolute/path", true},
		{"./relative", true},
		{"../up", true},
		{"plain-path", true},
		{"path/with:colon", true},
		{"javascript:alert(1)", false},
		{"JavaScript:alert(1)", false},
		{"vbscript:msgbox", false},
		{"data:text/html;base64,PHNjcmlwdD4=", false},
		{"file:///etc/passwd", false},
		{"gopher://old", false},
	}
	for _, tt := range tests {
		err := CheckURL(tt.url)
		if (err == nil) != tt.wantOK {
			t.Errorf("CheckURL(%q) = %v, want ok=%v", tt.url, err, tt.wantOK)
		}
	}
}

func TestCheckURLTruncatesInError(t *testing.T) {
	long := "javascript:" + strings.Repeat("x", 200)
	err := CheckURL(long)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 120 {
		t.Errorf("error message repeats too much of the URL: %d bytes", len(err.Error()))
	}
}

func TestCheckPattern(t *testing.T) {
	tests := []struct {
		pattern string
		wantOK  bool
	}{
		{`\d+`, true},
		{`(abc)+`, true},
		{`a{2,4}`, true},
		{`(a+)+`, false},
		{`(x*)*`, false},
		{`(b*){2,}`, false},
		{`([a-z`, false},
		{strings.Repeat("a", 1001), false},
	}
	for _, tt := range tests {
		err := CheckPattern(tt.pattern)
		if (err == nil) != tt.wantOK {
			t.Errorf("CheckPattern(%.20q) = %v, want ok=%v", tt.pattern, err, tt.wantOK)
		}
	}
}
