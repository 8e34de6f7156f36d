package cloudflare_r2

import (
	"fmt"

	"github.com/haierkeys/voice-note-service/pkg/storage/aws_s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// NewClient 创建 Cloudflare R2 客户端，R2 兼容 S3 协议，区域固定为 auto
func NewClient(accountID string, conf aws_s3.Config) (*aws_s3.S3, error) {
	if accountID == "" {
		return nil, errors.New("cloudflare_r2: account-id is required")
	}
	conf.Region = "auto"
	return aws_s3.NewClient(conf, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
	})
}
