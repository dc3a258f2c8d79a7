// Package capture turns uploaded or pasted pictures into data URIs the tutor
// can forward to a vision model.
package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultMaxBytes = 5 << 20

// 비전 API가 받는 래스터 형식만 허용
var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	ErrNotImage = errors.New("attachment is not an image")
	ErrTooLarge = errors.New("image is too large")
	ErrBadImage = errors.New("image data is malformed")
)

// Encode sniffs data and returns it as a base64 data URI.
func Encode(data []byte, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(data) == 0 {
		return "", ErrBadImage
	}
	if int64(len(data)) > maxBytes {
		return "", ErrTooLarge
	}
	mt := mimetype.Detect(data)
	mediaType, _, _ := strings.Cut(mt.String(), ";")
	if !allowedTypes[mediaType] {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// FromUpload reads a multipart image upload.
func FromUpload(fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if fh.Size > maxBytes {
		return "", ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("FromUpload(): open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("FromUpload(): read upload: %w", err)
	}
	return Encode(data, maxBytes)
}

// Validate checks a client supplied data URI. An empty string is valid and
// means no image.
func Validate(dataURI string, maxBytes int64) (string, error) {
	if dataURI == "" {
		return "", nil
	}
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", ErrBadImage
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return "", ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return Encode(data, maxBytes)
}
