package aliyun_oss

import (
	"context"

	"github.com/haierkeys/voice-note-service/pkg/storage/aws_s3"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string
	BucketName      string
	AccessKeyID     string
	AccessKeySecret string
	CustomPath      string
}

type OSS struct {
	Bucket *oss.Bucket
	Config *Config
}

func NewClient(conf *Config) (*OSS, error) {
	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	bucket, err := client.Bucket(conf.BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return &OSS{Bucket: bucket, Config: conf}, nil
}

func (p *OSS) SendFile(ctx context.Context, pathKey string, localPath string, contentType string) (string, error) {
	key := aws_s3.ObjectKey(p.Config.CustomPath, pathKey)
	if err := p.Bucket.PutObjectFromFile(key, localPath, oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return key, nil
}

func (p *OSS) Delete(ctx context.Context, pathKey string) error {
	err := p.Bucket.DeleteObject(aws_s3.ObjectKey(p.Config.CustomPath, pathKey), oss.WithContext(ctx))
	return errors.Wrap(err, "aliyun_oss")
}
