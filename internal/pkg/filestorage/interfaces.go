package filestorage

import "mime/multipart"

// FileStorage defines the interface for durable upload storage.
// Implementations return public-facing relative URLs beginning with "/".
type FileStorage interface {
	// SaveFileWithPath stores an uploaded file under a subdirectory and
	// returns the URL it will be served from
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file by its URL
	DeleteFile(fileURL string) error
}
