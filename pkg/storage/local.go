package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pedalpoint/bikeshop/config"
)

// localDisk keeps objects as plain files under a root directory. Keys map
// to relative paths; the public URL is the configured base plus the key.
type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk() *localDisk {
	root := config.StorageLocalRoot()
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localDisk{
		root:    root,
		baseURL: strings.TrimRight(config.StorageURL(), "/"),
	}
}

func (d *localDisk) resolve(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(key))
}

func (d *localDisk) wrap(op, key string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("storage/local: %s %s: %w", op, key, err)
}

func (d *localDisk) Put(key string, content []byte) error {
	return d.PutStream(key, bytes.NewReader(content))
}

func (d *localDisk) PutStream(key string, r io.Reader) error {
	dst := d.resolve(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return d.wrap("mkdir for", key, err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return d.wrap("create", key, err)
	}
	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return d.wrap("write", key, err)
	}
	return nil
}

func (d *localDisk) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(d.resolve(key))
	if err != nil {
		return nil, d.wrap("read", key, err)
	}
	return data, nil
}

func (d *localDisk) GetStream(key string) (io.ReadCloser, error) {
	f, err := os.Open(d.resolve(key))
	if err != nil {
		return nil, d.wrap("open", key, err)
	}
	return f, nil
}

func (d *localDisk) Exists(key string) bool {
	_, err := os.Stat(d.resolve(key))
	return err == nil
}

func (d *localDisk) Size(key string) (int64, error) {
	info, err := os.Stat(d.resolve(key))
	if err != nil {
		return 0, d.wrap("stat", key, err)
	}
	return info.Size(), nil
}

func (d *localDisk) Delete(key string) error {
	err := os.Remove(d.resolve(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return d.wrap("delete", key, err)
	}
	return nil
}

func (d *localDisk) URL(key string) string {
	return d.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}
