package llm

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"nova/internal/domain"
)

// StripDataURL removes a leading "data:image/...;base64," prefix if present,
// returning bare base64. The frontend sends data URLs straight from a file
// reader; Ollama wants the bare payload.
func StripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if _, rest, ok := strings.Cut(s, ","); ok {
		return rest
	}
	return s
}

// DecodeImage decodes a stored image attachment into its format name (as
// used by the Gemini SDK, e.g. "png", "jpeg") and raw bytes. The format is
// taken from the data URL when one is present, otherwise sniffed from the
// decoded bytes.
func DecodeImage(s string) (string, []byte, error) {
	format := ""
	if meta, rest, ok := strings.Cut(s, ","); ok && strings.HasPrefix(meta, "data:") {
		if mime, found := strings.CutPrefix(meta, "data:image/"); found {
			format, _, _ = strings.Cut(mime, ";")
		}
		s = rest
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", nil, fmt.Errorf("%w: image attachment is not valid base64: %v", domain.ErrValidation, err)
	}

	if format == "" {
		mime := http.DetectContentType(data)
		if !strings.HasPrefix(mime, "image/") {
			return "", nil, fmt.Errorf("%w: image attachment is not an image (%s)", domain.ErrValidation, mime)
		}
		format = strings.TrimPrefix(mime, "image/")
	}

	return format, data, nil
}
