package media

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidPath = errors.New("invalid media path")

// Store 把上传的文件保存在本地目录，并以 URL 前缀对外提供访问
type Store struct {
	root      string
	urlPrefix string
}

func New(root string, urlPrefix string) *Store {
	return &Store{
		root:      root,
		urlPrefix: urlPrefix,
	}
}

func (s *Store) Root() string {
	return s.root
}

// UniqueName 生成 {uuid}.{ext} 形式的文件名，ext 需要调用方校验过
func UniqueName(ext string) string {
	return uuid.NewString() + "." + ext
}

// Save 写入文件，rel 是相对于根目录、以 / 分隔的路径
func (s *Store) Save(rel string, src io.Reader) error {
	dst, err := s.abs(rel)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create media file: %w", err)
	}

	if _, err = io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("write media file: %w", err)
	}

	if err = out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("close media file: %w", err)
	}

	return nil
}

// Remove 删除文件，文件不存在时不报错
func (s *Store) Remove(rel string) error {
	dst, err := s.abs(rel)
	if err != nil {
		return err
	}

	if err = os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}

	return nil
}

func (s *Store) URL(rel string) string {
	return s.urlPrefix + strings.TrimPrefix(path.Clean("/"+rel), "/")
}

func (s *Store) abs(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if rel == "" || clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *Store) URLPrefix() string {
	return s.urlPrefix
}
