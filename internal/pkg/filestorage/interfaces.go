package filestorage

import (
	"io"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	Path     string // Absolute path where the file is stored
	FileSize int64  // Size in bytes
}

// FileStorage defines the storage operations the avatar service relies on
type FileStorage interface {
	// Stage copies r into a temporary file inside the storage root. Every byte written
	// to the file is also written to capture when it is not nil.
	Stage(r io.Reader, capture io.Writer) (StagedFile, error)

	// Open opens a stored file for reading
	Open(path string) (io.ReadCloser, error)

	// PathFor returns the absolute path a file with the given name is published under
	PathFor(name string) string
}

// StagedFile is an upload written to a temporary location and not yet visible under its
// final name
type StagedFile interface {
	// Size is the number of bytes written
	Size() int64

	// Publish makes the staged bytes visible under name. A file already stored under
	// name is moved aside and kept until the returned PublishedFile is committed or
	// reverted. The final file is created exclusively: if another writer recreates it
	// after the old file was moved aside, the old file is restored and an error
	// wrapping fs.ErrExist is returned.
	Publish(name string) (PublishedFile, error)

	// Discard removes the temporary file. It is safe to call after Publish.
	Discard() error
}

// PublishedFile is a published upload whose previous version is still kept aside
type PublishedFile interface {
	// Info describes the published file
	Info() FileInfo

	// Commit drops the previous version along with any other file stored under the
	// same name with a different extension.
	Commit() error

	// Revert removes the published file, unless it has been replaced since, and puts
	// the previous version back.
	Revert() error
}
