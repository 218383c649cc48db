package adapter

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/models"
)

// S3Config configures the bonus S3 object-storage source adapter,
// narrowed from the teacher's full connectors.StorageConnector surface
// (internal/connectors/aws) to the one bucket/object path PII-Radar
// needs: list then fetch.
type S3Config struct {
	Region     string
	Bucket     string
	Prefix     string
	MaxObjects int   // 0 = no limit
	MaxBytes   int64 // per-object read ceiling, 0 = unbounded
}

// S3Adapter enumerates objects under one bucket/prefix and yields each
// object's content.
type S3Adapter struct {
	cfg S3Config
}

// NewS3Adapter returns an S3Adapter over cfg.
func NewS3Adapter(cfg S3Config) *S3Adapter {
	return &S3Adapter{cfg: cfg}
}

func (a *S3Adapter) Iter(yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(a.cfg.Region))
	if err != nil {
		return &models.AdapterFatalError{Err: fmt.Errorf("loading AWS config: %w", err)}
	}
	client := s3.NewFromConfig(awsCfg)

	keys, err := a.listKeys(ctx, client)
	if err != nil {
		return &models.AdapterFatalError{Err: err}
	}

	for _, key := range keys {
		key := key
		sourceID := fmt.Sprintf("s3://%s/%s", a.cfg.Bucket, key)

		var cached string
		var cacheErr error
		var read bool
		provider := func() (string, error) {
			if read {
				return cached, cacheErr
			}
			read = true
			cached, cacheErr = a.getObject(ctx, client, key)
			return cached, cacheErr
		}

		locate := func(offset int) models.Location {
			return models.Location{Kind: models.LocationFile, Path: sourceID, ByteOffset: offset}
		}

		if err := yield(sourceID, provider, locate); err != nil {
			return err
		}
	}
	return nil
}

func (a *S3Adapter) listKeys(ctx context.Context, client *s3.Client) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: &a.cfg.Bucket,
		Prefix: &a.cfg.Prefix,
	})

	for paginator.HasMorePages() {
		if a.cfg.MaxObjects > 0 && len(keys) >= a.cfg.MaxObjects {
			break
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing objects in %s: %w", a.cfg.Bucket, err)
		}
		for _, obj := range page.Contents {
			if a.cfg.MaxObjects > 0 && len(keys) >= a.cfg.MaxObjects {
				break
			}
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

func (a *S3Adapter) getObject(ctx context.Context, client *s3.Client, key string) (string, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: &a.cfg.Bucket, Key: &key})
	if err != nil {
		return "", &models.AdapterTransientError{SourceID: key, Err: err}
	}
	defer out.Body.Close()

	var reader io.Reader = out.Body
	if a.cfg.MaxBytes > 0 {
		reader = io.LimitReader(out.Body, a.cfg.MaxBytes)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, reader); err != nil {
		return "", &models.AdapterTransientError{SourceID: key, Err: err}
	}
	return sb.String(), nil
}
