package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

// S3Storage stores listing images in a MinIO bucket. Object keys follow
// the panel's folder conventions: buildings/{address}/{file},
// houses/{address}/{file}, apartments/{id}/{floor}/{apartment}/{file}.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing S3 MinIO Storage", "endpoint", endpoint, "bucket", bucketName, "use_ssl", useSSL)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Error("S3Storage: failed to create MinIO client", "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	// Create bucket if it doesn't exist
	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists == nil && exists {
			log.Info("S3Storage: bucket already exists", "bucket", bucketName)
		} else {
			log.Error("S3Storage: failed to make or verify bucket", "bucket", bucketName, "make_bucket_error", err, "check_exists_error", errBucketExists)
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
	}

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log,
	}, nil
}

// Upload stores the bytes under the given object key and returns the
// durable public URL.
func (s *S3Storage) Upload(ctx context.Context, objectKey string, data []byte) (string, error) {
	s.logger.Debug("S3Storage.Upload: uploading object",
		"bucket", s.bucket, "object_key", objectKey, "size_bytes", len(data))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("S3Storage.Upload: PutObject failed", "bucket", s.bucket, "key", objectKey, "error", err)
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	// URL shape: http(s)://<endpoint>/<bucket>/<objectKey>
	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Debug("S3Storage.Upload: object uploaded", "url", fileURL)
	return fileURL, nil
}

// ListFolder returns every object key under the prefix.
func (s *S3Storage) ListFolder(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return keys, fmt.Errorf("list folder %s: %w", prefix, object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

// RemoveObject deletes one object.
func (s *S3Storage) RemoveObject(ctx context.Context, objectKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}
	return nil
}
