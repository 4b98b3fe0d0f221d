package yxdbfile

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit content hash of r, handy as a cheap way
// to compare two encoded files or confirm a round trip didn't
// silently change bytes. It carries no meaning within the file format
// itself.
func Fingerprint(r io.Reader) (uint64, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}

	return h.Sum64(), nil
}
