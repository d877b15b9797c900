package handler

import (
	"net/http"

	"carrot/internal/app/storage"
	"carrot/internal/pkg/errs"
	"carrot/internal/pkg/guard"
	"carrot/internal/pkg/logx"
	"carrot/internal/pkg/req"
	"carrot/internal/pkg/resp"
)

// PresignUploadInput defines the JSON input structure for generating an upload URL.
type PresignUploadInput struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	MimeType string `json:"mimeType" validate:"required"`
	FileSize int64  `json:"fileSize" validate:"required,gt=0"`
	// Folder selects what the image is for; products when omitted.
	Folder string `json:"folder,omitempty" validate:"omitempty,oneof=products avatars streams"`
}

func folderOrDefault(folder string) string {
	if folder == "" {
		return storage.FolderProducts
	}
	return folder
}

// HandlePresignUpload returns a time-limited URL the browser PUTs the image to.
// The returned id is the key later passed as photoId or avatarId.
func HandlePresignUpload(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var input PresignUploadInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			return customErr
		}

		if customErr := storage.ValidateImage(input.FileName, input.MimeType, input.FileSize); customErr != nil {
			return customErr
		}

		key := storage.NewImageKey(folderOrDefault(input.Folder), input.FileName)

		url, err := deps.Storage.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, storage.PresignedURLDuration)
		if err != nil {
			logx.Error(err, "presign upload failed", "key", key)
			return errs.NewError(errs.ErrFileStorageFailed)
		}

		resp.RespondSuccess(w, r, resp.Fields{
			"id":        key,
			"uploadURL": url,
		})
		return nil
	}
}

// HandleUpload accepts a multipart "file" field and stores it server-side.
func HandleUpload(deps *AppDeps) guard.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if customErr := req.SetupMultipart(w, r); customErr != nil {
			return customErr
		}

		folder := r.FormValue("folder")
		switch folder {
		case "", storage.FolderProducts, storage.FolderAvatars, storage.FolderStreams:
		default:
			return errs.NewError(errs.ErrInvalidParams)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return errs.NewError(errs.ErrMissingField, "file")
		}
		defer file.Close()

		if header.Size > storage.MaxImageSize {
			return errs.NewError(errs.ErrFileSizeTooLarge)
		}

		mimeType, body, customErr := storage.SniffImage(file)
		if customErr != nil {
			return customErr
		}

		key := storage.NewImageKey(folderOrDefault(folder), "upload"+storage.ExtForMIME(mimeType))
		if err := deps.Storage.Upload(r.Context(), key, mimeType, body); err != nil {
			logx.Error(err, "upload failed", "key", key)
			return errs.NewError(errs.ErrFileStorageFailed)
		}

		resp.RespondSuccess(w, r, resp.Fields{
			"id":  key,
			"url": deps.Storage.PublicURL(key),
		})
		return nil
	}
}
