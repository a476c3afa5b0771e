package object

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path"
)

// ObjectStore saves and retrieves binary objects by key.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, storageKey string) error
}

// ExportKey is the storage key of an exported document:
// exports/<sha256(userID)>/<exportID>.<ext>.
func ExportKey(userID, exportID, ext string) string {
	return path.Join("exports", ownerSegment(userID), exportID+"."+ext)
}

func ownerSegment(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
