package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
	"github.com/kamal-hamza/tokenlint/pkg/layout"
)

// FileAssetTree reads and writes token folders through an afero filesystem
type FileAssetTree struct {
	fs     afero.Fs
	layout *layout.Layout
}

// NewFileAssetTree creates a tree over fs. Pass afero.NewOsFs() for the real
// checkout.
func NewFileAssetTree(fs afero.Fs, l *layout.Layout) *FileAssetTree {
	return &FileAssetTree{
		fs:     fs,
		layout: l,
	}
}

// Ensure it implements the interface
var _ ports.AssetTree = (*FileAssetTree)(nil)

func (r *FileAssetTree) Kind(ctx context.Context, key domain.FolderKey) (domain.EntryKind, error) {
	return r.kind(r.layout.TokenPath(key.Chain, key.Token))
}

func (r *FileAssetTree) kind(path string) (domain.EntryKind, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.EntryMissing, nil
		}
		return domain.EntryMissing, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.EntryDir, nil
	}
	return domain.EntryFile, nil
}

func (r *FileAssetTree) Entries(ctx context.Context, key domain.FolderKey) ([]string, error) {
	dir := r.layout.TokenPath(key.Chain, key.Token)
	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

func (r *FileAssetTree) Exists(ctx context.Context, key domain.FolderKey, name string) bool {
	exists, err := afero.Exists(r.fs, r.filePath(key, name))
	return err == nil && exists
}

func (r *FileAssetTree) Size(ctx context.Context, key domain.FolderKey, name string) (int64, error) {
	info, err := r.fs.Stat(r.filePath(key, name))
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return info.Size(), nil
}

func (r *FileAssetTree) ReadFile(ctx context.Context, key domain.FolderKey, name string) ([]byte, error) {
	path := r.filePath(key, name)
	if isDir, err := afero.IsDir(r.fs, path); err == nil && isDir {
		return nil, fmt.Errorf("failed to read %s: is a directory", name)
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (r *FileAssetTree) Chains(ctx context.Context) ([]string, error) {
	infos, err := afero.ReadDir(r.fs, r.layout.ChainsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read chains directory: %w", err)
	}

	var chains []string
	for _, info := range infos {
		if info.IsDir() {
			chains = append(chains, info.Name())
		}
	}
	sort.Strings(chains)
	return chains, nil
}

func (r *FileAssetTree) AssetEntries(ctx context.Context, chain string) (map[string]domain.EntryKind, error) {
	dir := r.layout.AssetsPath(chain)
	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read assets directory %s: %w", dir, err)
	}

	entries := make(map[string]domain.EntryKind, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			entries[info.Name()] = domain.EntryDir
		} else {
			entries[info.Name()] = domain.EntryFile
		}
	}
	return entries, nil
}

func (r *FileAssetTree) CreateFolder(ctx context.Context, key domain.FolderKey) error {
	dir := r.layout.TokenPath(key.Chain, key.Token)
	if err := r.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func (r *FileAssetTree) WriteFile(ctx context.Context, key domain.FolderKey, name string, data []byte) error {
	path := r.filePath(key, name)
	if err := afero.WriteFile(r.fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (r *FileAssetTree) filePath(key domain.FolderKey, name string) string {
	return filepath.Join(r.layout.TokenPath(key.Chain, key.Token), name)
}
