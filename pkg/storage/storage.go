// Package storage 把上传的音频归档到外部存储
package storage

import (
	"context"

	"github.com/haierkeys/voice-note-service/pkg/code"
	"github.com/haierkeys/voice-note-service/pkg/storage/aliyun_oss"
	"github.com/haierkeys/voice-note-service/pkg/storage/aws_s3"
	"github.com/haierkeys/voice-note-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/voice-note-service/pkg/storage/local_fs"
	"github.com/haierkeys/voice-note-service/pkg/storage/minio"
	"github.com/haierkeys/voice-note-service/pkg/storage/webdav"
)

type Type = string

const (
	OSS    Type = "oss"
	R2     Type = "r2"
	S3     Type = "s3"
	LOCAL  Type = "localfs"
	MinIO  Type = "minio"
	WebDAV Type = "webdav"
)

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	MinIO:  true,
	WebDAV: true,
}

// Config 统一的存储配置，按 Type 取用对应字段
type Config struct {
	Type       Type   `yaml:"type" default:"localfs"`
	IsEnabled  bool   `yaml:"is-enable"`
	CustomPath string `yaml:"custom-path" default:"audio"`

	// S3 / OSS / MinIO / R2
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"`

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/archive"`
}

// Storager 存储后端
type Storager interface {
	// SendFile 上传本地文件，返回对象键
	SendFile(ctx context.Context, pathKey string, localPath string, contentType string) (string, error)
	Delete(ctx context.Context, pathKey string) error
}

// NewClient 按类型创建存储后端
func NewClient(config *Config) (Storager, error) {
	if config == nil || !StorageTypeMap[config.Type] {
		return nil, code.ErrorInvalidStorageType
	}

	s3cfg := aws_s3.Config{
		Endpoint:        config.Endpoint,
		Region:          config.Region,
		BucketName:      config.BucketName,
		AccessKeyID:     config.AccessKeyID,
		AccessKeySecret: config.AccessKeySecret,
		CustomPath:      config.CustomPath,
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{SavePath: config.SavePath, CustomPath: config.CustomPath})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case R2:
		return cloudflare_r2.NewClient(config.AccountID, s3cfg)
	case S3:
		return aws_s3.NewClient(s3cfg)
	case MinIO:
		return minio.NewClient(s3cfg)
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}

// ObjectKey 拼接自定义前缀与文件键
func ObjectKey(customPath, pathKey string) string {
	return aws_s3.ObjectKey(customPath, pathKey)
}
