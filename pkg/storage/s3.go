package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pedalpoint/bikeshop/config"
)

// s3Disk keeps objects in an S3-compatible bucket. Setting S3_ENDPOINT
// switches to path-style addressing, which covers MinIO, R2 and Spaces.
type s3Disk struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func newS3Disk() (*s3Disk, error) {
	bucket := config.StorageS3Bucket()
	if bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET is not configured")
	}
	region := config.StorageS3Region()

	loadOpts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if key, sec := config.StorageS3Key(), config.StorageS3Secret(); key != "" && sec != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, sec, ""),
		))
	}
	cfg, err := awscfg.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if ep := config.StorageS3Endpoint(); ep != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		})
	}

	baseURL := strings.TrimRight(config.StorageS3URL(), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &s3Disk{
		client:  s3.NewFromConfig(cfg, clientOpts...),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// ref builds the bucket/key pair every object call needs.
func (d *s3Disk) ref(key string) (*string, *string) {
	return aws.String(d.bucket), aws.String(strings.TrimLeft(key, "/"))
}

func (d *s3Disk) Put(key string, content []byte) error {
	return d.PutStream(key, bytes.NewReader(content))
}

func (d *s3Disk) PutStream(key string, r io.Reader) error {
	// PutObject wants a seekable body for signing, so buffer the stream.
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("storage/s3: buffer %s: %w", key, err)
	}
	bucket, k := d.ref(key)
	_, err = d.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: bucket,
		Key:    k,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", key, err)
	}
	return nil
}

func (d *s3Disk) Get(key string) ([]byte, error) {
	rc, err := d.GetStream(key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (d *s3Disk) GetStream(key string) (io.ReadCloser, error) {
	bucket, k := d.ref(key)
	out, err := d.client.GetObject(context.Background(), &s3.GetObjectInput{Bucket: bucket, Key: k})
	if err != nil {
		return nil, fmt.Errorf("storage/s3: get %s: %w", key, err)
	}
	return out.Body, nil
}

func (d *s3Disk) head(key string) (*s3.HeadObjectOutput, error) {
	bucket, k := d.ref(key)
	return d.client.HeadObject(context.Background(), &s3.HeadObjectInput{Bucket: bucket, Key: k})
}

func (d *s3Disk) Exists(key string) bool {
	_, err := d.head(key)
	return err == nil
}

func (d *s3Disk) Size(key string) (int64, error) {
	out, err := d.head(key)
	if err != nil {
		return 0, fmt.Errorf("storage/s3: head %s: %w", key, err)
	}
	if out.ContentLength == nil {
		return 0, nil
	}
	return *out.ContentLength, nil
}

func (d *s3Disk) Delete(key string) error {
	bucket, k := d.ref(key)
	_, err := d.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{Bucket: bucket, Key: k})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", key, err)
	}
	return nil
}

func (d *s3Disk) URL(key string) string {
	return d.baseURL + "/" + strings.TrimLeft(key, "/")
}
