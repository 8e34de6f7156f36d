package aws_s3

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string
	Region          string
	BucketName      string
	AccessKeyID     string
	AccessKeySecret string
	CustomPath      string
}

type S3 struct {
	Client *s3.Client
	Config Config
}

// NewClient 创建 S3 客户端，optFns 供 MinIO、R2 覆盖端点等选项
func NewClient(conf Config, optFns ...func(*s3.Options)) (*S3, error) {
	if conf.BucketName == "" {
		return nil, errors.New("aws_s3: bucket-name is required")
	}
	region := conf.Region
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	return &S3{Client: s3.NewFromConfig(cfg, optFns...), Config: conf}, nil
}

// ObjectKey 拼接自定义前缀与文件键
func ObjectKey(customPath, pathKey string) string {
	customPath = strings.Trim(customPath, "/")
	if customPath == "" {
		return pathKey
	}
	return customPath + "/" + strings.TrimPrefix(pathKey, "/")
}

func (p *S3) SendFile(ctx context.Context, pathKey string, localPath string, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	defer f.Close()

	key := ObjectKey(p.Config.CustomPath, pathKey)
	_, err = p.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return key, nil
}

func (p *S3) Delete(ctx context.Context, pathKey string) error {
	_, err := p.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(ObjectKey(p.Config.CustomPath, pathKey)),
	})
	return errors.Wrap(err, "aws_s3")
}
