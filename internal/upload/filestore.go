package upload

import (
	"io"
	"os"

	"github.com/evcraddock/realstate-api/internal/apperr"
)

// DiskStore writes uploads to local files. It never creates directories.
type DiskStore struct{}

// Save copies src to dst, creating or truncating dst.
func (DiskStore) Save(src io.Reader, dst string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return apperr.StorageWrite("creating "+dst, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = apperr.StorageWrite("closing "+dst, closeErr)
		}
	}()

	if _, err := io.Copy(f, src); err != nil {
		return apperr.StorageWrite("writing "+dst, err)
	}
	return nil
}
