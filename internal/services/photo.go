package services

import (
	"fmt"
	"net/http"
	"slices"

	"inventory-system/config"
	apperrors "inventory-system/pkg/errors"
)

// checkPhoto проверяет размер и тип картинки по правилам из config.UploadContexts.
// Пустое фото допустимо.
func checkPhoto(uploadContext string, photo []byte) error {
	if len(photo) == 0 {
		return nil
	}
	rules, ok := config.UploadContexts[uploadContext]
	if !ok {
		return fmt.Errorf("неизвестный контекст загрузки %q", uploadContext)
	}

	if int64(len(photo)) > rules.MaxSizeMB<<20 {
		return apperrors.NewValidationError("Размер фотографии не должен превышать %d МБ", rules.MaxSizeMB)
	}
	if mime := http.DetectContentType(photo); !slices.Contains(rules.AllowedMimeTypes, mime) {
		return apperrors.NewValidationError("Недопустимый формат фотографии: %s", mime)
	}
	return nil
}
