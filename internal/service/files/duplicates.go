package files

import (
	"context"
	"fmt"
	"strings"

	"filedepot/internal/domain"
	"filedepot/internal/domain/models"
	"filedepot/internal/domain/repositories"
)

// Resolution is the outcome of applying the duplicate policy to a target
// path.
type Resolution struct {
	FinalPath  string
	FinalName  string
	ChangeType string
	Replaced   *models.FileNode // node deleted when the mode was "replace"
}

// DuplicateResolver decides what happens when an upload targets a logical
// path that is already occupied.
type DuplicateResolver struct {
	nodeRepo repositories.FileNodeRepository
}

// NewDuplicateResolver creates a duplicate resolver
func NewDuplicateResolver(nodeRepo repositories.FileNodeRepository) *DuplicateResolver {
	return &DuplicateResolver{nodeRepo: nodeRepo}
}

// Resolve applies the duplicate-resolution policy for a normalized path.
//
//   - No existing file: ADD, path unchanged.
//   - "replace": the existing node is deleted (its blob is left for garbage
//     collection), REPLACE, path unchanged.
//   - "keep-both": probes " (2)", " (3)", ... before the extension until a
//     free path is found, ADD under the disambiguated path.
//   - Unset with an existing file: returns a DuplicateFileError carrying the
//     existing node so the initiator can choose a mode.
func (r *DuplicateResolver) Resolve(ctx context.Context, projectID, normalizedPath, replaceMode string) (*Resolution, error) {
	existing, err := r.nodeRepo.FindFileByPath(ctx, projectID, normalizedPath)
	if err != nil {
		return nil, err
	}

	_, leaf := SplitLogicalPath(normalizedPath)

	if existing == nil {
		return &Resolution{
			FinalPath:  normalizedPath,
			FinalName:  leaf,
			ChangeType: models.ChangeTypeAdd,
		}, nil
	}

	switch replaceMode {
	case models.ReplaceModeReplace:
		if err := r.nodeRepo.Delete(ctx, existing.ID, projectID); err != nil {
			return nil, fmt.Errorf("delete replaced file: %w", err)
		}
		return &Resolution{
			FinalPath:  normalizedPath,
			FinalName:  leaf,
			ChangeType: models.ChangeTypeReplace,
			Replaced:   existing,
		}, nil

	case models.ReplaceModeKeepBoth:
		newPath, newName, err := r.nextAvailableName(ctx, projectID, normalizedPath)
		if err != nil {
			return nil, err
		}
		return &Resolution{
			FinalPath:  newPath,
			FinalName:  newName,
			ChangeType: models.ChangeTypeAdd,
		}, nil

	default:
		return nil, &domain.DuplicateFileError{
			Message:      fmt.Sprintf("a file already exists at '%s'", normalizedPath),
			ExistingID:   existing.ID,
			ExistingName: existing.Name,
			ExistingPath: existing.Path,
		}
	}
}

// nextAvailableName appends " (2)", " (3)", ... before the extension until
// the probe path is free. The first duplicate gets "(2)", not "(1)".
func (r *DuplicateResolver) nextAvailableName(ctx context.Context, projectID, normalizedPath string) (string, string, error) {
	dirs, leaf := SplitLogicalPath(normalizedPath)
	stem, ext := SplitExtension(leaf)

	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, counter, ext)

		probe := candidate
		if len(dirs) > 0 {
			probe = strings.Join(dirs, "/") + "/" + candidate
		}

		existing, err := r.nodeRepo.FindFileByPath(ctx, projectID, probe)
		if err != nil {
			return "", "", err
		}
		if existing == nil {
			return probe, candidate, nil
		}
	}
}
