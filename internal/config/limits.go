package config

const (
	// MaxFileNameLength is the maximum length for file names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and match
	// common filesystem name limits.
	MaxFileNameLength = 255

	// MaxDirectoryNameLength is the maximum length for directory names.
	// Same as file names for consistency.
	MaxDirectoryNameLength = 255

	// MaxFilePathLength is the maximum length for full logical paths.
	// Set to 1000 to allow reasonably deep hierarchies while keeping
	// paths indexable.
	MaxFilePathLength = 1000

	// MaxChunkCount is the maximum number of chunks a single upload
	// may declare. With the default 5MB client chunk size this caps
	// uploads at ~50GB.
	MaxChunkCount = 10000

	// MaxDescriptionLength is the maximum length for the free-text
	// description recorded in the change log.
	MaxDescriptionLength = 2000
)
