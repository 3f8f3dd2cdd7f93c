package service

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitespot-dev/nitespot/shared/domain"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
)

func makeUpload(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	return form.File["avatar"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestSaveAvatar(t *testing.T) {
	viewer := &domain.Viewer{Id: "user-1"}

	t.Run("downscales and stores a jpeg", func(t *testing.T) {
		files := newMockMediaStorage()
		var gotURL string
		users := &mockUserStorage{
			updateAvatarFunc: func(id domain.UserId, avatarURL string) error {
				gotURL = avatarURL
				return nil
			},
		}
		svc := NewMedia(files, users, "/media", 5<<20, 512)

		url, err := svc.SaveAvatar(viewer, makeUpload(t, "big.png", pngBytes(t, 1024, 256)))
		require.NoError(t, err)
		assert.Equal(t, "/media/avatars/user-1.jpg", url)
		assert.Equal(t, url, gotURL)

		stored, ok := files.saved["avatars/user-1.jpg"]
		require.True(t, ok)
		img, err := jpeg.Decode(bytes.NewReader(stored))
		require.NoError(t, err)
		assert.Equal(t, 512, img.Bounds().Dx())
		assert.Equal(t, 128, img.Bounds().Dy())
	})

	t.Run("small images keep their size", func(t *testing.T) {
		files := newMockMediaStorage()
		svc := NewMedia(files, &mockUserStorage{}, "/media", 5<<20, 512)

		_, err := svc.SaveAvatar(viewer, makeUpload(t, "small.png", pngBytes(t, 64, 64)))
		require.NoError(t, err)

		img, err := jpeg.Decode(bytes.NewReader(files.saved["avatars/user-1.jpg"]))
		require.NoError(t, err)
		assert.Equal(t, 64, img.Bounds().Dx())
	})

	t.Run("rejects non-images", func(t *testing.T) {
		svc := NewMedia(newMockMediaStorage(), &mockUserStorage{}, "/media", 5<<20, 512)

		_, err := svc.SaveAvatar(viewer, makeUpload(t, "notes.txt", []byte("plain text, not an image")))
		var e *internal_errors.ErrorWithStatusCode
		require.True(t, errors.As(err, &e))
		assert.Equal(t, 400, e.StatusCode)
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		svc := NewMedia(newMockMediaStorage(), &mockUserStorage{}, "/media", 128, 512)

		_, err := svc.SaveAvatar(viewer, makeUpload(t, "big.png", pngBytes(t, 256, 256)))
		var e *internal_errors.ErrorWithStatusCode
		require.True(t, errors.As(err, &e))
		assert.Equal(t, 400, e.StatusCode)
	})

	t.Run("removes the file when the profile update fails", func(t *testing.T) {
		files := newMockMediaStorage()
		users := &mockUserStorage{
			updateAvatarFunc: func(domain.UserId, string) error { return errors.New("db down") },
		}
		svc := NewMedia(files, users, "/media", 5<<20, 512)

		_, err := svc.SaveAvatar(viewer, makeUpload(t, "a.png", pngBytes(t, 64, 64)))
		require.Error(t, err)
		assert.Contains(t, files.deleted, "avatars/user-1.jpg")
	})
}
