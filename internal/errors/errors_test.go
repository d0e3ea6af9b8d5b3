package errors

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config error", "E101", "Invalid config file", CategoryConfig},
		{"cli error", "E121", "Terminal UI failed", CategoryCLI},
		{"inspect error", "E140", "Inspector server failed", CategoryInspect},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E102").Wrap(errors.New("70000"))
	if got, want := err.Error(), "E102: Invalid inspector port: 70000"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryCLI, "bad %s", "flag")
	if plain.Error() != "bad flag" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "bad flag")
	}
	if plain.FormatCompact() != plain.Error() {
		t.Error("FormatCompact should match Error")
	}
}

func TestUnwrap(t *testing.T) {
	err := New("E100").Wrap(fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E103")
	if got := FromError(orig, "E120"); got != orig {
		t.Error("FromError should return an existing *Error unchanged")
	}

	wrapped := FromError(errors.New("boom"), "E120")
	if wrapped.Code != "E120" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestFormat(t *testing.T) {
	err := New("E103").
		WithSuggestion(`Use "info"`).
		Wrap(errors.New("level \"loud\""))

	out := err.Format()
	for _, want := range []string{"E103", "Invalid log level", "Supported levels", `Use "info"`, "loud"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}
