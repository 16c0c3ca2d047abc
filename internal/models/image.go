package models

import "time"

// ImageRecord is a stored image asset. ID is the only external handle.
type ImageRecord struct {
	ID         string
	Payload    []byte
	Filename   string
	Checksum   []byte
	UploadedAt time.Time
}
