// Package romload loads cartridge and boot ROM images from disk,
// transparently extracting them from zip/gzip/7z archives when the
// file on disk isn't a raw image. ROM loading sits outside the core
// (see internal/cartridge, internal/boot) - this package is the thin
// ambient loader a command-line front end hands raw bytes through to
// cartridge.New/boot.New.
package romload

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// Load reads filename and, if its extension names a gzip, zip or 7z
// archive, extracts the image inside it: the gzip stream, or the first
// .gb/.gbc entry of a zip or 7z archive (its first entry when none has
// such a name). Any other file is returned as read.
func Load(filename string) ([]byte, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("romload: %w", err)
	}

	switch filepath.Ext(filename) {
	case ".gb", ".gbc", ".bin":
		return raw, nil
	case ".gz":
		return extractGzip(raw)
	case ".zip":
		return extractZip(raw)
	case ".7z":
		return extractSevenZip(raw)
	default:
		return raw, nil
	}
}

func extractGzip(raw []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("romload: gzip: %w", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func extractZip(raw []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("romload: zip: %w", err)
	}
	entry, err := firstROMEntry(zipEntryNames(r))
	if err != nil {
		return nil, err
	}
	f, err := r.Open(entry)
	if err != nil {
		return nil, fmt.Errorf("romload: zip: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func extractSevenZip(raw []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("romload: 7z: %w", err)
	}
	names := make([]string, len(r.File))
	for i, f := range r.File {
		names[i] = f.Name
	}
	entry, err := firstROMEntry(names)
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("romload: 7z: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("romload: 7z: entry %q vanished", entry)
}

func zipEntryNames(r *zip.Reader) []string {
	names := make([]string, len(r.File))
	for i, f := range r.File {
		names[i] = f.Name
	}
	return names
}

// firstROMEntry prefers a .gb/.gbc entry over whatever happens to sort
// first in the archive, since archives occasionally bundle a readme or
// box art alongside the image.
func firstROMEntry(names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("romload: archive is empty")
	}
	for _, name := range names {
		switch filepath.Ext(name) {
		case ".gb", ".gbc":
			return name, nil
		}
	}
	return names[0], nil
}
