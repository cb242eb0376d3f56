package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BlobStore は検証済みファイルの保存先。
// ファイルは種別ごとのサブディレクトリ（image/ document/）に保存される。
type BlobStore interface {
	// Save はsubdir配下にnameでコンテンツを保存し、書き込んだバイト数を返す。
	// subdirとnameはサーバーが生成した識別子であり、パス要素を含んではならない。
	Save(subdir, name string, r io.Reader) (int64, error)

	// Remove はsubdir配下のnameのファイルを削除する。存在しない場合もエラーにしない。
	Remove(subdir, name string) error
}

// LocalBlobStore はローカルファイルシステム上のディレクトリに保存する実装。
type LocalBlobStore struct {
	dir string
}

// NewLocalBlobStore は保存先ディレクトリを作成してLocalBlobStoreを生成する。
func NewLocalBlobStore(dir string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalBlobStore{dir: dir}, nil
}

// Save はファイルを書き込む。subdirまたはnameにパス区切りが含まれる場合は拒否する。
func (s *LocalBlobStore) Save(subdir, name string, r io.Reader) (int64, error) {
	if err := validatePathElement(subdir); err != nil {
		return 0, err
	}
	if err := validatePathElement(name); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Join(s.dir, subdir), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create storage directory: %w", err)
	}

	path := filepath.Join(s.dir, subdir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to close file: %w", err)
	}
	return written, nil
}

// Remove はファイルを削除する。
func (s *LocalBlobStore) Remove(subdir, name string) error {
	if err := validatePathElement(subdir); err != nil {
		return err
	}
	if err := validatePathElement(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, subdir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func validatePathElement(s string) error {
	if s == "" || s == "." || s == ".." || s != filepath.Base(s) {
		return fmt.Errorf("invalid storage name: %s", s)
	}
	return nil
}

var _ BlobStore = (*LocalBlobStore)(nil)
