package kvstore

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/ytget/prodbar/internal/platform"
)

const diskTempDir = ".tmp"

// Disk stores one file per key under a base directory. Writes go through a
// temp file and a rename, so readers never see a partial value.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// NewDisk opens (creating if needed) a disk store rooted at basePath
func NewDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("kvstore: disk base path is empty")
	}
	if err := platform.CreateDirectoryIfNotExists(basePath); err != nil {
		return nil, fmt.Errorf("kvstore: ensure base path: %w", err)
	}

	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			TempDir:      filepath.Join(basePath, diskTempDir),
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 0, // other processes write here too
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the directory the store writes to
func (d *Disk) BasePath() string {
	return d.basePath
}

// Get returns the value stored under key
func (d *Disk) Get(key string) (string, bool, error) {
	val, err := d.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(val), true, nil
}

// Set stores value under key, replacing the previous file
func (d *Disk) Set(key, value string) error {
	return d.d.WriteString(key, value)
}

// Remove deletes key. Removing an absent key is not an error.
func (d *Disk) Remove(key string) error {
	if err := d.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
