// Package fileutil provides unified file system access for both real and embedded file systems.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileSystem は実ファイルシステムと埋め込みファイルシステムを統一的に扱うインターフェース
// ファイル名の大文字小文字は区別しない
type FileSystem interface {
	// Open はファイルを開く
	Open(name string) (fs.File, error)
	// ReadFile はファイルの内容を読み込む
	ReadFile(name string) ([]byte, error)
	// Exists はファイルが存在するかどうかを返す
	Exists(name string) bool
	// String はログ用の説明を返す
	String() string
}

// RealFS は実ファイルシステムへのアクセスを提供する
type RealFS struct {
	basePath string
}

// NewRealFS は実ファイルシステム用のFileSystemを作成する
func NewRealFS(basePath string) *RealFS {
	return &RealFS{basePath: basePath}
}

func (r *RealFS) Open(name string) (fs.File, error) {
	actualPath, err := r.find(name)
	if err != nil {
		return nil, err
	}
	return os.Open(actualPath)
}

func (r *RealFS) ReadFile(name string) ([]byte, error) {
	actualPath, err := r.find(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(actualPath)
}

func (r *RealFS) Exists(name string) bool {
	_, err := r.find(name)
	return err == nil
}

func (r *RealFS) String() string {
	return "dir:" + r.basePath
}

// BasePath はベースパスを返す
func (r *RealFS) BasePath() string {
	return r.basePath
}

func (r *RealFS) find(name string) (string, error) {
	// 先頭の "/" や "\" を除去
	cleanName := strings.TrimPrefix(strings.TrimPrefix(name, "/"), "\\")
	p := cleanName
	if r.basePath != "" {
		p = filepath.Join(r.basePath, cleanName)
	}

	// まず直接アクセスを試みる
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, nil
	}
	path, err := FindFileCaseInsensitive(filepath.Dir(p), filepath.Base(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		// ディレクトリ自体がない場合も「ファイルなし」として扱う
		return "", fmt.Errorf("%w: %s", fs.ErrNotExist, name)
	}
	return path, err
}

// EmbedFS は埋め込みファイルシステムへのアクセスを提供する
type EmbedFS struct {
	fsys     fs.FS
	basePath string
}

// NewEmbedFS は埋め込みファイルシステム用のFileSystemを作成する
func NewEmbedFS(fsys fs.FS, basePath string) *EmbedFS {
	return &EmbedFS{fsys: fsys, basePath: basePath}
}

func (e *EmbedFS) Open(name string) (fs.File, error) {
	actualPath, err := e.find(name)
	if err != nil {
		return nil, err
	}
	return e.fsys.Open(actualPath)
}

func (e *EmbedFS) ReadFile(name string) ([]byte, error) {
	actualPath, err := e.find(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(e.fsys, actualPath)
}

func (e *EmbedFS) Exists(name string) bool {
	_, err := e.find(name)
	return err == nil
}

func (e *EmbedFS) String() string {
	return "embed:" + e.basePath
}

func (e *EmbedFS) find(name string) (string, error) {
	// embed.FSでは "/" を使用
	cleanName := strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/")
	p := cleanName
	if e.basePath != "" {
		p = e.basePath + "/" + cleanName
	}

	if info, err := fs.Stat(e.fsys, p); err == nil && !info.IsDir() {
		return p, nil
	}
	found, err := FindFileCaseInsensitiveFS(e.fsys, path.Dir(p), path.Base(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", fs.ErrNotExist, name)
	}
	return found, err
}

// Layered は複数のFileSystemを優先順に重ねる
// 先頭のFileSystemにあるファイルが優先される（ユーザー指定のアセットで埋め込みを上書きする用途）
type Layered struct {
	layers []FileSystem
}

// NewLayered はLayeredを作成する（nilは無視する）
func NewLayered(layers ...FileSystem) *Layered {
	l := &Layered{}
	for _, fsys := range layers {
		if fsys != nil {
			l.layers = append(l.layers, fsys)
		}
	}
	return l
}

func (l *Layered) Open(name string) (fs.File, error) {
	for _, fsys := range l.layers {
		if fsys.Exists(name) {
			return fsys.Open(name)
		}
	}
	return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, name)
}

func (l *Layered) ReadFile(name string) ([]byte, error) {
	for _, fsys := range l.layers {
		if fsys.Exists(name) {
			return fsys.ReadFile(name)
		}
	}
	return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, name)
}

func (l *Layered) Exists(name string) bool {
	for _, fsys := range l.layers {
		if fsys.Exists(name) {
			return true
		}
	}
	return false
}

func (l *Layered) String() string {
	names := make([]string, len(l.layers))
	for i, fsys := range l.layers {
		names[i] = fsys.String()
	}
	return strings.Join(names, " > ")
}
