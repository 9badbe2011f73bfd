package publish

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Publisher implements export.Publisher using the AWS SDK upload
// manager. Credentials and region come from the standard SDK chain.
type S3Publisher struct {
	uploader *s3manager.Uploader
}

// NewS3Publisher creates a publisher bound to the given session.
func NewS3Publisher(sess *session.Session) *S3Publisher {
	return &S3Publisher{uploader: s3manager.NewUploader(sess)}
}

// Upload streams the staged file to s3://bucket/key. Failures are not
// retried beyond what the SDK does internally.
func (p *S3Publisher) Upload(ctx context.Context, bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	_, err = p.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
