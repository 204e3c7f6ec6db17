package file

import (
	"errors"
	"fmt"
	"io"

	"github.com/lezhnev74/postings_codec/codec"
	"golang.org/x/exp/mmap"
)

// ReadArena maps the arena file and copies it out. The returned slice has the
// file size as length and codec.Padding zero bytes of extra capacity, so
// segments cut from it can be decoded in place.
func ReadArena(dir, key string) ([]byte, error) {
	r, err := mmap.Open(arenaPath(dir, key))
	if err != nil {
		return nil, fmt.Errorf("reader: arena file: %w", err)
	}
	defer r.Close()

	buf := make([]byte, r.Len(), r.Len()+codec.Padding)
	_, err = r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reader: arena file: mmap: %w", err)
	}

	return buf, nil
}
