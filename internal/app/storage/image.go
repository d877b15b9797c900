package storage

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/randx"
)

const (
	// MaxImageSizeMB is the maximum allowed image size in megabytes.
	MaxImageSizeMB = 5

	// MaxImageSize is the maximum allowed image size in bytes.
	MaxImageSize = MaxImageSizeMB * 1024 * 1024

	// PresignedURLDuration is how long a presigned upload URL stays valid.
	PresignedURLDuration = 5 * time.Minute
)

// Folders images are stored under.
const (
	FolderProducts = "products"
	FolderAvatars  = "avatars"
	FolderStreams  = "streams"
)

// ExtToMIME maps the accepted image extensions to their MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ValidateImage checks the declared name, MIME type and size of an image.
func ValidateImage(fileName, mimeType string, fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}
	if fileSize > MaxImageSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	expected, ok := ExtToMIME[strings.ToLower(filepath.Ext(fileName))]
	if !ok || expected != strings.ToLower(mimeType) {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}

// SniffImage detects the real type of an uploaded body. It returns the MIME type
// and a reader that replays the sniffed header.
func SniffImage(body io.Reader) (string, io.Reader, *errs.CustomError) {
	header := make([]byte, 3072)
	n, err := io.ReadFull(body, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", nil, errs.NewError(errs.ErrFormParseFailed)
	}
	header = header[:n]

	detected := mimetype.Detect(header)
	for _, allowed := range ExtToMIME {
		if detected.Is(allowed) {
			return allowed, io.MultiReader(bytes.NewReader(header), body), nil
		}
	}

	return "", nil, errs.NewError(errs.ErrFileTypeInvalid)
}

// NewImageKey returns a fresh object key like "products/<uuid>.png".
func NewImageKey(folder, fileName string) string {
	return fmt.Sprintf("%s/%s%s", folder, randx.FileID(), strings.ToLower(filepath.Ext(fileName)))
}

// ExtForMIME returns an extension for mimeType, used when an upload's file name has none.
func ExtForMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}
