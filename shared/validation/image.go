// Package validation checks uploaded image files before they reach the
// media pipeline.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"

	_ "golang.org/x/image/webp"
)

var (
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrInvalidMimeType = errors.New("unsupported file type")
)

var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PendingImage is a validated upload: raw bytes plus decoded bounds.
type PendingImage struct {
	Filename string
	MimeType string
	Width    int
	Height   int
	Data     []byte
}

// ValidateImageUpload sniffs the real content type (the client-supplied
// header is not trusted), enforces the size cap and verifies the file
// decodes as an image.
func ValidateImageUpload(fileHeader *multipart.FileHeader, maxBytes int64) (*PendingImage, error) {
	if fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrPayloadTooLarge, fileHeader.Size, maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrPayloadTooLarge, maxBytes)
	}

	mimeType := http.DetectContentType(data)
	if !allowedImageMimes[mimeType] {
		return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a decodable image", ErrInvalidMimeType)
	}

	return &PendingImage{
		Filename: fileHeader.Filename,
		MimeType: mimeType,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Data:     data,
	}, nil
}
