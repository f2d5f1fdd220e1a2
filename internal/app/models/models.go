package models

import "io"

// Upload describes a file received from a client
type Upload struct {
	Content     io.Reader // File bytes
	Filename    string    // Original file name, used only for its extension
	Size        int64     // Declared size in bytes
	ContentType string    // Declared MIME type, may be empty
}
