package domain

import (
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

const dataURLScheme = "data:"

// DataURL is a decoded data:<mime>;base64,<payload> string
type DataURL struct {
	MimeType string
	Data     []byte
}

// IsDataURL reports whether s is an inline data URL rather than a stored blob reference
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataURLScheme)
}

// DecodeDataURL splits a data URL into its media type and decoded payload.
// Only base64 payloads with an explicit media type are accepted.
func DecodeDataURL(s string) (*DataURL, error) {
	header, _, ok := strings.Cut(s, ",")
	if !ok || !IsDataURL(header) {
		return nil, fmt.Errorf("%w: expected data:<mime>;base64,<payload>", ErrInvalidBlobInput)
	}

	mediaType, _, _ := strings.Cut(strings.TrimPrefix(header, dataURLScheme), ";")
	if mediaType == "" {
		return nil, fmt.Errorf("%w: missing media type", ErrInvalidBlobInput)
	}

	du, err := dataurl.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlobInput, err)
	}

	if du.Encoding != dataurl.EncodingBase64 {
		return nil, fmt.Errorf("%w: payload is not base64 encoded", ErrInvalidBlobInput)
	}

	if len(du.Data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidBlobInput)
	}

	return &DataURL{
		MimeType: du.MediaType.ContentType(),
		Data:     du.Data,
	}, nil
}

// ExtensionFor maps a MIME type to the file extension used for stored blobs.
// PNG, GIF and WebP are recognised; everything else is stored as JPEG.
func ExtensionFor(mimeType string) string {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mt, "png"):
		return ".png"
	case strings.Contains(mt, "gif"):
		return ".gif"
	case strings.Contains(mt, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
