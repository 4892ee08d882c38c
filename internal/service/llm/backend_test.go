package llm

import (
	"encoding/base64"
	"errors"
	"testing"

	"nova/internal/domain"
)

func TestResolveVariant(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		want    Variant
		wantErr bool
	}{
		{name: "gemini model", model: "gemini-2.0-flash", want: VariantCloudStreaming},
		{name: "gemini with whitespace", model: "  gemini-2.0-pro  ", want: VariantCloudStreaming},
		{name: "ollama model", model: "llama3:latest", want: VariantLocalBatch},
		{name: "mistral", model: "mistral", want: VariantLocalBatch},
		{name: "empty", model: "", wantErr: true},
		{name: "whitespace only", model: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVariant(tt.model)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveVariant(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestStripDataURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "data url", in: "data:image/png;base64,AAAA", want: "AAAA"},
		{name: "bare base64 passes through", in: "AAAA", want: "AAAA"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripDataURL(tt.in); got != tt.want {
				t.Errorf("StripDataURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	// Enough of a PNG header for content sniffing.
	pngBytes := []byte("\x89PNG\r\n\x1a\n0123456789")
	pngB64 := base64.StdEncoding.EncodeToString(pngBytes)

	t.Run("data url declares the format", func(t *testing.T) {
		format, data, err := DecodeImage("data:image/jpeg;base64," + pngB64)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("format = %q, want declared jpeg", format)
		}
		if string(data) != string(pngBytes) {
			t.Error("decoded bytes differ from input")
		}
	})

	t.Run("bare base64 is sniffed", func(t *testing.T) {
		format, _, err := DecodeImage(pngB64)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if format != "png" {
			t.Errorf("format = %q, want sniffed png", format)
		}
	})

	t.Run("invalid base64 is a validation error", func(t *testing.T) {
		_, _, err := DecodeImage("not base64 at all!!!")
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("non-image bytes are rejected", func(t *testing.T) {
		_, _, err := DecodeImage(base64.StdEncoding.EncodeToString([]byte("plain text payload")))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}
