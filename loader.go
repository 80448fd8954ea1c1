package finbook

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadBook opens and decodes the book at path. A missing file is not an
// error; it yields a fresh empty book, so the first command against a new
// book just works.
func LoadBook(path, home string) (*Book, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewBook(home), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", path, err)
	}
	defer f.Close()

	book, err := DecodeBook(f, home)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", path, err)
	}
	return book, nil
}

// SaveBook writes the book to path, creating parent directories as needed.
// The file is written to a temporary sibling first and renamed into place so
// a failed save never truncates the existing book.
func SaveBook(path string, book *Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for book %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary book file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeBook(tmp, book); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing book file %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
