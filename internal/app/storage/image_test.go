package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrot/internal/pkg/errs"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		size     int64
		wantCode int
	}{
		{"valid png", "bike.PNG", "image/png", 1024, 0},
		{"valid jpeg", "bike.jpeg", "IMAGE/JPEG", 1024, 0},
		{"empty", "bike.png", "image/png", 0, errs.ErrInvalidParams},
		{"too large", "bike.png", "image/png", MaxImageSize + 1, errs.ErrFileSizeTooLarge},
		{"mismatched type", "bike.png", "image/gif", 1024, errs.ErrFileTypeInvalid},
		{"not an image", "notes.txt", "text/plain", 1024, errs.ErrFileTypeInvalid},
		{"no extension", "bike", "image/png", 1024, errs.ErrFileTypeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.fileName, tt.mimeType, tt.size)
			if tt.wantCode == 0 {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestSniffImage(t *testing.T) {
	gif := "GIF89a" + strings.Repeat("\x00", 32)

	mimeType, body, err := SniffImage(strings.NewReader(gif))
	require.Nil(t, err)
	assert.Equal(t, "image/gif", mimeType)

	replayed, readErr := io.ReadAll(body)
	require.NoError(t, readErr)
	assert.Equal(t, gif, string(replayed))

	_, _, err = SniffImage(strings.NewReader("plain text, definitely not an image"))
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrFileTypeInvalid, err.Code)
}

func TestNewImageKeyAndPublicURL(t *testing.T) {
	key := NewImageKey(FolderProducts, "Bike.JPG")
	assert.True(t, strings.HasPrefix(key, "products/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	assert.Equal(t, "https://cdn.example.com/products/a.png", publicURL("https://cdn.example.com/", "products/a.png"))
	assert.Empty(t, publicURL("https://cdn.example.com", ""))
	assert.Equal(t, ".webp", ExtForMIME("image/webp"))
}
