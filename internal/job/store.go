package job

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/hupe1980/spatialgo/blobstore"
	"github.com/hupe1980/spatialgo/blobstore/minio"
	"github.com/hupe1980/spatialgo/blobstore/s3"
)

// OpenStore builds the blob store described by cfg.
func OpenStore(ctx context.Context, cfg StoreConfig) (blobstore.Store, error) {
	switch cfg.Kind {
	case "local":
		return blobstore.NewLocalStore(cfg.Path), nil
	case "memory":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		var optFns []func(*config.LoadOptions) error
		if cfg.Region != "" {
			optFns = append(optFns, config.WithRegion(cfg.Region))
		}
		return s3.Load(ctx, cfg.Bucket, cfg.Prefix, optFns...)
	case "minio":
		return minio.Dial(minio.Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			Secure:    cfg.Secure,
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}
