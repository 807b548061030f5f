package storage

import (
	"context"
	"io"
)

// DocumentStorage stores consultation documents (prescriptions, reports,
// scans) and serves them back by URL.
type DocumentStorage interface {
	// Upload stores the file under the consultation's folder and returns a
	// permanent download URL.
	Upload(ctx context.Context, file io.Reader, filename, consultationID string) (string, error)
	// Delete removes a previously uploaded document by its public ID.
	Delete(ctx context.Context, publicID string) error
}
