package webdav

import (
	"context"
	"os"
	"path"

	"github.com/haierkeys/voice-note-service/pkg/storage/aws_s3"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config WebDAV 连接信息
type Config struct {
	Endpoint   string
	User       string
	Password   string
	CustomPath string
}

type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

func NewClient(conf *Config) (*WebDAV, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("webdav: endpoint is required")
	}
	return &WebDAV{
		Client: gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password),
		Config: conf,
	}, nil
}

// SendFile 以流的方式上传本地文件
func (w *WebDAV) SendFile(ctx context.Context, pathKey string, localPath string, contentType string) (string, error) {
	key := "/" + aws_s3.ObjectKey(w.Config.CustomPath, pathKey)

	if err := w.Client.MkdirAll(path.Dir(key), 0o755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	defer f.Close()

	if err := w.Client.WriteStream(key, f, 0o644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return key, nil
}

func (w *WebDAV) Delete(ctx context.Context, pathKey string) error {
	err := w.Client.Remove("/" + aws_s3.ObjectKey(w.Config.CustomPath, pathKey))
	return errors.Wrap(err, "webdav")
}
