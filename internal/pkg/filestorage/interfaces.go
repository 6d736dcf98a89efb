package filestorage

import "mime/multipart"

// FileInfo describes a stored file
type FileInfo struct {
	Path     string // Relative or full path where the file is stored
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // Detected MIME type
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile validates and saves an uploaded file, returning its info
	SaveFile(fileHeader *multipart.FileHeader) (*FileInfo, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (*FileInfo, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error
}
