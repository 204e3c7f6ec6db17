package file

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"
)

// WriteArena stores the raw encoded postings bytes under a fresh key.
// The file becomes visible under its final name only when completely written.
func WriteArena(dir string, raw []byte) (key string, err error) {
	key = fmt.Sprint(time.Now().UnixNano())
	tmp := path.Join(dir, key+"_arena_tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("writer: arena file: %w", err)
	}

	_, err = f.Write(raw)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("writer: arena file: %w", err)
	}

	err = f.Sync()
	err2 := f.Close()
	if err == nil {
		err = err2
	}
	if err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("writer: arena file: %w", err)
	}

	// rename to make it visible for readers
	err = os.Rename(tmp, arenaPath(dir, key))
	if err != nil {
		return "", fmt.Errorf("writer: arena file: %w", err)
	}

	return key, nil
}

// RemoveArena unlinks the arena file, a missing file is not an error.
func RemoveArena(dir, key string) error {
	err := os.Remove(arenaPath(dir, key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func arenaPath(dir, key string) string {
	return path.Join(dir, key+"_arena")
}
