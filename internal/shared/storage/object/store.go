package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/util"
)

// Stored describes a successfully saved object.
type Stored struct {
	Key       string
	URL       string
	SizeBytes int64
	MimeType  string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
// Save must place the object under a globally unique key and return a
// publicly resolvable URL for it.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (Stored, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// NewStorageKey derives a collision-free storage key that still carries the
// original filename for human readability.
func NewStorageKey(fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return fmt.Sprintf("%s_%s", randomID(), sanitized), nil
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
