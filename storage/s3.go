package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"hoaxify/hoax-api/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
)

// Objects never change once written so clients may cache them forever
const cacheForever = "public, max-age=31536000, immutable"

// S3Store keeps uploads in a bucket, prefixed per kind. Serving happens via
// redirects to the public bucket URL instead of streaming through the API
type S3Store struct {
	C         *s3.Client
	Bucket    *string
	PublicURL string
}

func NewS3Store() (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("aws.access_key_id"),
			viper.GetString("aws.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("aws.bucket"))

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = viper.GetString("aws.region")
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Store{
		C:         client,
		Bucket:    bucket,
		PublicURL: viper.GetString("aws.public_url"),
	}, nil
}

func key(kind Kind, name string) string {
	return string(kind) + "/" + name
}

func (s *S3Store) Save(kind Kind, data []byte, ext string) (string, error) {
	name := util.RandStr(storedNameLength) + ext

	_, err := s.C.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:        s.Bucket,
		Key:           aws.String(key(kind, name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String(cacheForever),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to S3, %w", kind, err)
	}

	return name, nil
}

func (s *S3Store) Delete(kind Kind, name string) error {
	_, err := s.C.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key(kind, name)),
	})

	return err
}

func (s *S3Store) Path(Kind, string) (string, bool) {
	return "", false
}

func (s *S3Store) URL(kind Kind, name string) (string, bool) {
	return s.PublicURL + "/" + key(kind, name), true
}
