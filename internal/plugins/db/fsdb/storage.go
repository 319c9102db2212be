package fsdb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// StorageEntity is a directory of named files sharing one extension.
type StorageEntity struct {
	Label         string
	Dir           string
	FileExtension string
}

// Configure creates the directory if needed.
func (o *StorageEntity) Configure() error {
	return os.MkdirAll(o.Dir, os.ModePerm)
}

// GetNames returns the entry names, without extension, sorted. A missing directory has no entries.
func (o *StorageEntity) GetNames() (ret []string, err error) {
	var entries []os.DirEntry
	if entries, err = os.ReadDir(o.Dir); err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("could not read %s directory: %w", o.Label, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if o.FileExtension != "" {
			if !strings.HasSuffix(name, o.FileExtension) {
				continue
			}
			name = strings.TrimSuffix(name, o.FileExtension)
		}
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return
}

func (o *StorageEntity) BuildFilePathByName(name string) string {
	return filepath.Join(o.Dir, o.buildFileName(name))
}

func (o *StorageEntity) buildFileName(name string) string {
	return name + o.FileExtension
}

func (o *StorageEntity) Exists(name string) bool {
	_, err := os.Stat(o.BuildFilePathByName(name))
	return err == nil
}

func (o *StorageEntity) Save(name string, content []byte) (err error) {
	if err = o.Configure(); err != nil {
		return
	}
	if err = os.WriteFile(o.BuildFilePathByName(name), content, 0o644); err != nil {
		err = fmt.Errorf("could not save %s %s: %w", o.Label, name, err)
	}
	return
}

func (o *StorageEntity) Load(name string) (ret []byte, err error) {
	if ret, err = os.ReadFile(o.BuildFilePathByName(name)); err != nil {
		err = fmt.Errorf("could not load %s %s: %w", o.Label, name, err)
	}
	return
}

func (o *StorageEntity) Delete(name string) (err error) {
	if err = os.Remove(o.BuildFilePathByName(name)); err != nil {
		err = fmt.Errorf("could not delete %s %s: %w", o.Label, name, err)
	}
	return
}
