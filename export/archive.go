// Package export renders already fetched records as ZIP, CSV or PDF documents.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"gallery/utils"
)

// ArchiveWriter writes a ZIP archive whose entry names are safe on every
// common file system and never collide.
type ArchiveWriter struct {
	zw    *zip.Writer
	names map[string]bool
}

func NewArchiveWriter(w io.Writer) *ArchiveWriter {
	return &ArchiveWriter{
		zw:    zip.NewWriter(w),
		names: map[string]bool{},
	}
}

// EntryName sanitizes name and appends " (2)", " (3)"... before the
// extension until it is unique within the archive.
func (a *ArchiveWriter) EntryName(name string) string {
	name = strings.TrimSpace(utils.PathSafeName(name))
	if name == "" || name == "." || name == ".." {
		name = "photo"
	}
	candidate := name
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; a.names[strings.ToLower(candidate)]; i++ {
		candidate = fmt.Sprintf("%s (%d)%s", base, i, ext)
	}
	a.names[strings.ToLower(candidate)] = true
	return candidate
}

// Add copies body into a new entry and returns the entry name used
func (a *ArchiveWriter) Add(name string, modified time.Time, body io.Reader) (string, error) {
	entry := a.EntryName(name)
	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     entry,
		Method:   zip.Store, // photos are already compressed
		Modified: modified,
	})
	if err != nil {
		return entry, err
	}
	_, err = io.Copy(w, body)
	return entry, err
}

func (a *ArchiveWriter) Close() error {
	return a.zw.Close()
}
