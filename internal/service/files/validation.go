package files

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"filedepot/internal/config"
	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/domain/services"
)

// validateInitRequest checks the upload-init payload before any state is
// allocated for it.
func validateInitRequest(req *services.InitUploadRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.FileName,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&req.FilePath,
			validation.Length(0, config.MaxFilePathLength),
		),
		validation.Field(&req.FileSize,
			validation.Min(int64(0)),
		),
		validation.Field(&req.TotalChunks,
			validation.Required,
			validation.Min(1),
			validation.Max(config.MaxChunkCount),
		),
		validation.Field(&req.ReplaceMode,
			validation.In(models.ReplaceModeReplace, models.ReplaceModeKeepBoth),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}
	return nil
}
