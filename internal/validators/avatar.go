package validators

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrAvatarEmpty       = errors.New("no image provided")
	ErrAvatarTooLarge    = errors.New("image too large")
	ErrAvatarUnsupported = errors.New("unsupported image type")
)

var avatarTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// validates avatar bytes by size and sniffed content type, returning the
// detected MIME type. Header-declared types are ignored, only the bytes
// count.
func AvatarValidator(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", ErrAvatarEmpty
	}

	if int64(len(data)) > maxBytes {
		return "", ErrAvatarTooLarge
	}

	mime := mimetype.Detect(data)
	for _, t := range avatarTypes {
		if mime.Is(t) {
			return mime.String(), nil
		}
	}

	return "", ErrAvatarUnsupported
}
