// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.Load(ctx, "my-bucket", "spatial/",
//	    config.WithRegion("eu-central-1"),
//	)
//
// Uploads go through the SDK upload manager, so large results are sent as
// multipart uploads.
package s3
