// Package storage keeps uploaded booking images on the local
// filesystem. References persisted in the database use the public
// "/uploads/<name>" form; the store maps them back to disk paths.
// File deletion is best-effort and never fails a request: the upload
// directory sits outside the database transaction, which is an
// accepted limitation, not part of the booking invariant.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// RefPrefix is the public path prefix under which uploads are served
// and referenced in persisted records.
const RefPrefix = "/uploads/"

// Uploads is a directory-backed store for booking images.
type Uploads struct {
	Dir string
}

// NewUploads ensures the upload directory exists and returns a store
// bound to it.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploads{Dir: dir}, nil
}

// Save writes an uploaded file under a random name, keeping the
// original extension, and returns its public reference.
func (u *Uploads) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	name := hex.EncodeToString(buf) + strings.ToLower(filepath.Ext(fh.Filename))

	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return RefPrefix + name, nil
}

// Remove deletes the file behind a stored reference. References that
// do not carry the upload prefix (external URLs, empty values) are
// ignored. Failures are logged, never returned: a stray file must not
// fail the request that orphaned it.
func (u *Uploads) Remove(ref string) {
	if !strings.HasPrefix(ref, RefPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(ref, RefPrefix))
	full := filepath.Join(u.Dir, name)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Printf("uploads: failed to delete file %s: %v", full, err)
	}
}
