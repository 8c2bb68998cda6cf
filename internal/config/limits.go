package config

const (
	// MaxUploadSize is the byte cap for a single uploaded blob (10 MiB).
	MaxUploadSize = 10 << 20

	// MaxRequestBody caps non-upload request bodies well below the blob limit.
	MaxRequestBody = 1 << 20

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxFileTitleLength is the maximum length for file titles.
	MaxFileTitleLength = 255

	// MaxDescriptionLength is the maximum length for folder and file
	// descriptions.
	MaxDescriptionLength = 1000

	// MaxLogFiles is how many timestamped server logs are kept on disk.
	MaxLogFiles = 10
)
