package domain

import (
	"errors"
	"testing"
)

func TestDecodeDataURL(t *testing.T) {
	got, err := DecodeDataURL("data:image/png;base64,QUJD")
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}

	if got.MimeType != "image/png" {
		t.Errorf("MimeType = %q, want %q", got.MimeType, "image/png")
	}
	if string(got.Data) != "ABC" {
		t.Errorf("Data = %q, want %q", got.Data, "ABC")
	}
	if ext := ExtensionFor(got.MimeType); ext != ".png" {
		t.Errorf("ExtensionFor(%q) = %q, want %q", got.MimeType, ext, ".png")
	}
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "Empty string",
			input: "",
		},
		{
			name:  "Plain path",
			input: "/uploads/image-1.png",
		},
		{
			name:  "No payload separator",
			input: "data:image/png;base64",
		},
		{
			name:  "Missing media type",
			input: "data:;base64,QUJD",
		},
		{
			name:  "Not base64 encoded",
			input: "data:image/png,ABC",
		},
		{
			name:  "Empty payload",
			input: "data:image/png;base64,",
		},
		{
			name:  "Broken base64",
			input: "data:image/png;base64,!!!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDataURL(tt.input)
			if !errors.Is(err, ErrInvalidBlobInput) {
				t.Errorf("DecodeDataURL(%q) error = %v, want ErrInvalidBlobInput", tt.input, err)
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		mimeType string
		expected string
	}{
		{mimeType: "image/png", expected: ".png"},
		{mimeType: "image/gif", expected: ".gif"},
		{mimeType: "image/webp", expected: ".webp"},
		{mimeType: "IMAGE/PNG", expected: ".png"},
		{mimeType: "image/jpeg", expected: ".jpg"},
		{mimeType: "image/bmp", expected: ".jpg"},
		{mimeType: "", expected: ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			if got := ExtensionFor(tt.mimeType); got != tt.expected {
				t.Errorf("ExtensionFor(%q) = %q, want %q", tt.mimeType, got, tt.expected)
			}
		})
	}
}

func TestIsDataURL(t *testing.T) {
	if !IsDataURL("data:image/png;base64,QUJD") {
		t.Error("expected data URL to be recognised")
	}
	if IsDataURL("/uploads/image-1.png") {
		t.Error("expected blob reference not to be a data URL")
	}
}

func TestErrMissingImageIsValidation(t *testing.T) {
	if !errors.Is(ErrMissingImage, ErrValidation) {
		t.Error("ErrMissingImage should match ErrValidation")
	}
}
