package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"gamevault/internal/pkg/logx"
)

// downloadTimeout bounds the fetch of one upstream thumbnail.
const downloadTimeout = 10 * time.Second

// s3Store implements the ThumbnailStore interface against S3-compatible storage.
type s3Store struct {
	cfg        ServiceConfig
	s3Client   *s3.Client
	uploader   *manager.Uploader
	httpClient *http.Client
}

// newS3Store initializes the S3 client using a custom configuration that
// supports S3-compatible endpoints.
func newS3Store(cfg ServiceConfig) (*s3Store, error) {
	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		logx.Error(err, "Failed to load AWS SDK config")
		return nil, errors.New("failed to initialize S3 client configuration")
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &s3Store{
		cfg:        cfg,
		s3Client:   client,
		uploader:   manager.NewUploader(client),
		httpClient: &http.Client{Timeout: downloadTimeout},
	}, nil
}

// thumbnailKey builds the object key for one game, keeping the upstream file
// extension when it has one.
func thumbnailKey(gameID int64, srcURL string) string {
	ext := path.Ext(srcURL)
	if len(ext) > 5 {
		ext = ""
	}
	return fmt.Sprintf("thumbnails/%d%s", gameID, ext)
}

// MirrorThumbnail copies the image at srcURL into the bucket (once) and
// returns a presigned download URL for the mirrored copy.
func (c *s3Store) MirrorThumbnail(ctx context.Context, gameID int64, srcURL string) (string, error) {
	key := thumbnailKey(gameID, srcURL)

	exists, err := c.objectExists(ctx, key)
	if err != nil {
		return "", err
	}

	if !exists {
		if err := c.uploadFromURL(ctx, key, srcURL); err != nil {
			return "", err
		}
	}

	return c.presignDownload(ctx, key, PresignDuration)
}

// Delete removes the mirrored copy for the given game.
func (c *s3Store) Delete(ctx context.Context, gameID int64) error {
	key := thumbnailKey(gameID, "")

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	})

	if err != nil {
		logx.Error(err, "S3 delete failed", "key", key)
		return errors.New("failed to delete thumbnail from S3")
	}

	return nil
}

// objectExists checks for the object via HeadObject.
func (c *s3Store) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	})

	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		logx.Error(err, "Failed to check S3 object", "key", key)
		return false, errors.New("failed to check thumbnail in S3")
	}

	return true, nil
}

// uploadFromURL streams the upstream image straight into the bucket.
func (c *s3Store) uploadFromURL(ctx context.Context, key, srcURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build thumbnail request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logx.Error(err, "Failed to download upstream thumbnail", "url", srcURL)
		return errors.New("failed to download upstream thumbnail")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logx.Warn("Upstream thumbnail answered with unexpected status", "url", srcURL, "status", resp.StatusCode)
		return errors.New("failed to download upstream thumbnail")
	}

	contentType := resp.Header.Get("Content-Type")

	_, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &c.cfg.S3BucketName,
		Key:         &key,
		Body:        resp.Body,
		ContentType: &contentType,
	})
	if err != nil {
		logx.Error(err, "Failed to upload thumbnail to S3", "key", key)
		return errors.New("failed to upload thumbnail to S3")
	}

	return nil
}

// presignDownload generates a presigned URL for downloading the specified key.
func (c *s3Store) presignDownload(ctx context.Context, key string, duration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(c.s3Client)

	presignInput := &s3.GetObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	}

	resp, err := presignClient.PresignGetObject(ctx, presignInput, s3.WithPresignExpires(duration))
	if err != nil {
		logx.Error(err, "Failed to generate presigned URL", "key", key)
		return "", errors.New("failed to generate presigned URL")
	}

	return resp.URL, nil
}
