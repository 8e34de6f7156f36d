package minio

import (
	"github.com/haierkeys/voice-note-service/pkg/storage/aws_s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// NewClient 创建 MinIO 客户端，使用自定义端点与 path-style 寻址
func NewClient(conf aws_s3.Config) (*aws_s3.S3, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("minio: endpoint is required")
	}
	return aws_s3.NewClient(conf, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(conf.Endpoint)
		o.UsePathStyle = true
	})
}
