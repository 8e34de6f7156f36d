package local_fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/haierkeys/voice-note-service/pkg/storage/aws_s3"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string
	CustomPath string
}

// LocalFS 归档到本机的另一个目录
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		return nil, errors.New("local_fs: save-path is required")
	}
	return &LocalFS{Config: conf}, nil
}

func (l *LocalFS) target(pathKey string) string {
	return filepath.Join(l.Config.SavePath, filepath.FromSlash(aws_s3.ObjectKey(l.Config.CustomPath, pathKey)))
}

func (l *LocalFS) SendFile(ctx context.Context, pathKey string, localPath string, contentType string) (string, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer src.Close()

	dst := l.target(pathKey)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return aws_s3.ObjectKey(l.Config.CustomPath, pathKey), nil
}

func (l *LocalFS) Delete(ctx context.Context, pathKey string) error {
	err := os.Remove(l.target(pathKey))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}
