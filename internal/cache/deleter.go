package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Deleter 负责删除缓存文件。实现必须把“路径不存在”视为成功，保证重复清理幂等。
type Deleter interface {
	// Delete 删除 path。recursive 为 false 时只删除单个文件；为 true 时清空整个目录树，
	// 但保留 path 本身，缓存写入方无需重新创建根目录。
	Delete(ctx context.Context, path string, recursive bool) error
}

// NewFSDeleter 基于 afero.Fs 构建 Deleter，fs 为空时使用真实文件系统。
func NewFSDeleter(fsys afero.Fs) Deleter {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &fsDeleter{fs: fsys}
}

type fsDeleter struct {
	fs afero.Fs
}

func (d *fsDeleter) Delete(ctx context.Context, path string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return errors.New("delete path required")
	}
	if !recursive {
		return d.removeFile(path)
	}
	return d.removeTree(ctx, path)
}

func (d *fsDeleter) removeFile(path string) error {
	info, err := d.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory %s without recursive flag", path)
	}
	if err := d.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d *fsDeleter) removeTree(ctx context.Context, root string) error {
	entries, err := afero.ReadDir(d.fs, root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := filepath.Join(root, entry.Name())
		if err := d.fs.RemoveAll(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
