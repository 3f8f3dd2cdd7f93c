package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"path"

	"golang.org/x/image/draw"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
	"github.com/nitespot-dev/nitespot/shared/logger"
	"github.com/nitespot-dev/nitespot/shared/validation"
)

type MediaService interface {
	SaveAvatar(viewer *domain.Viewer, fileHeader *multipart.FileHeader) (string, error)
	Open(relativePath string) (io.ReadCloser, error)
}

type Media struct {
	files     MediaStorage
	users     AvatarStorage
	baseURL   string
	maxBytes  int64
	maxPixels int
}

type MediaStorage interface {
	Save(fileData io.Reader, category, name, extension string) (string, error)
	Read(filePath string) (io.ReadCloser, error)
	Delete(filePath string) error
}

type AvatarStorage interface {
	UserById(id domain.UserId) (domain.User, error)
	UpdateAvatar(id domain.UserId, avatarURL string) error
}

func NewMedia(files MediaStorage, users AvatarStorage, baseURL string, maxBytes int64, maxPixels int) *Media {
	return &Media{files: files, users: users, baseURL: baseURL, maxBytes: maxBytes, maxPixels: maxPixels}
}

// SaveAvatar validates the upload, re-encodes it as a downscaled JPEG
// (which also strips any embedded metadata) and stores it under the
// viewer's id, replacing any previous avatar.
func (m *Media) SaveAvatar(viewer *domain.Viewer, fileHeader *multipart.FileHeader) (string, error) {
	pending, err := validation.ValidateImageUpload(fileHeader, m.maxBytes)
	if err != nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}

	img, _, err := image.Decode(bytes.NewReader(pending.Data))
	if err != nil {
		return "", internal_errors.BadRequest("Could not decode image")
	}

	img = downscale(img, m.maxPixels)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode avatar: %w", err)
	}

	relativePath, err := m.files.Save(&buf, "avatars", viewer.Id, ".jpg")
	if err != nil {
		return "", err
	}

	avatarURL := path.Join(m.baseURL, relativePath)
	if err := m.users.UpdateAvatar(viewer.Id, avatarURL); err != nil {
		// roll back the orphaned file; the old avatar URL is still valid
		if rmErr := m.files.Delete(relativePath); rmErr != nil {
			logger.Log.Warn("failed to remove orphaned avatar", "path", relativePath, "error", rmErr)
		}
		return "", err
	}
	return avatarURL, nil
}

// Open serves a stored media file by its path relative to the media root.
func (m *Media) Open(relativePath string) (io.ReadCloser, error) {
	r, err := m.files.Read(relativePath)
	if err != nil {
		return nil, internal_errors.NotFound("Media not found")
	}
	return r, nil
}

// downscale shrinks img so its longest side is at most maxPixels,
// preserving aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image, maxPixels int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxPixels && h <= maxPixels {
		return img
	}

	if w > h {
		h = h * maxPixels / w
		w = maxPixels
	} else {
		w = w * maxPixels / h
		h = maxPixels
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
