package r2sync

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// RemoteKeySet holds every key currently present in the bucket under the
// configured prefix.
type RemoteKeySet map[string]struct{}

// BatchDeleteResult carries the per-key outcomes of one DeleteObjects call.
type BatchDeleteResult struct {
	Deleted []string
	Failed  map[string]error
}

type BucketClient interface {
	ListKeys(ctx context.Context, bucketName string, prefix string) (RemoteKeySet, error)
	UploadFile(ctx context.Context, bucketName string, key string, contentType string, body io.Reader) error
	DeleteBatch(ctx context.Context, bucketName string, keys []string) (BatchDeleteResult, error)
}

// bucketAPI is the slice of the S3 SDK surface the client needs. Kept as an
// interface so tests can drive pagination and batch deletes with a fake.
type bucketAPI interface {
	manager.UploadAPIClient
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

type R2Client struct {
	Client bucketAPI
}

// NewR2Client builds an S3 client against the account's R2 endpoint. R2 is
// S3-compatible but wants static credentials, region "auto" and path-style
// addressing.
func NewR2Client(ctx context.Context, appConfig AppConfig) (BucketClient, error) {
	creds := credentials.NewStaticCredentialsProvider(
		appConfig.AccessKeyID,
		appConfig.SecretAccessKey,
		"",
	)
	cfg, cfgErr := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(creds),
		config.WithRegion("auto"))
	if cfgErr != nil {
		return nil, fmt.Errorf("Error creating R2 client: %+v", cfgErr)
	}

	awsS3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(appConfig.Endpoint())
		o.UsePathStyle = true
	})

	return &R2Client{Client: awsS3Client}, nil
}

func (s *R2Client) ListKeys(ctx context.Context, bucketName string, prefix string) (RemoteKeySet, error) {
	bucketKeys := make(RemoteKeySet)
	listParams := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
	}
	if prefix != "" {
		listParams.Prefix = aws.String(prefix)
	}
	paginator := s3.NewListObjectsV2Paginator(s.Client, listParams, func(o *s3.ListObjectsV2PaginatorOptions) {})
	for paginator.HasMorePages() {
		currentPage, pageErr := paginator.NextPage(ctx)
		if pageErr != nil {
			return nil, fmt.Errorf("%w: bucket %s: %v", ErrRemoteList, bucketName, pageErr)
		}
		for _, object := range currentPage.Contents {
			bucketKeys[*object.Key] = struct{}{}
		}
	}

	return bucketKeys, nil
}

func (s *R2Client) UploadFile(ctx context.Context, bucketName, key, contentType string, body io.Reader) error {
	uploader := manager.NewUploader(s.Client)
	_, putErr := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})

	return putErr
}

func (s *R2Client) DeleteBatch(ctx context.Context, bucketName string, keys []string) (BatchDeleteResult, error) {
	result := BatchDeleteResult{
		Deleted: make([]string, 0, len(keys)),
		Failed:  make(map[string]error),
	}

	identifiers := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
	}

	delReq := &s3.DeleteObjectsInput{
		Bucket: aws.String(bucketName),
		Delete: &types.Delete{
			Objects: identifiers,
			Quiet:   aws.Bool(false),
		},
	}
	out, delErr := s.Client.DeleteObjects(ctx, delReq)
	if delErr != nil {
		return result, delErr
	}

	for _, deleted := range out.Deleted {
		result.Deleted = append(result.Deleted, aws.ToString(deleted.Key))
	}
	for _, keyErr := range out.Errors {
		result.Failed[aws.ToString(keyErr.Key)] = fmt.Errorf(
			"%s: %s", aws.ToString(keyErr.Code), aws.ToString(keyErr.Message))
	}

	return result, nil
}
