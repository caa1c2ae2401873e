// Package storage implements avatar file storage on top of gocloud.dev
// blob buckets, so the same code serves a local directory in development
// and GCS in production.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"croptrade/config"
	"croptrade/internal/domain/service"
	"croptrade/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Register the bucket schemes resolved from config at runtime.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for FileStorage, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewFileStorage opens the configured blob bucket and returns a FileStorage.
func NewFileStorage(params Params) (service.FileStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL is not configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Blob storage initialized",
		slog.String("bucket_url", cfg.BucketURL),
	)

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload writes the object at key, replacing any previous content, and
// returns the public URL it is served from.
func (s *blobStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}

	written, err := io.Copy(writer, body)
	if err != nil {
		// Close discards the partial write on error paths.
		writer.Close()

		return "", errors.Wrapf(err, "failed to write object %s", key)
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to finalize object %s", key)
	}

	s.logger.Debug("Object uploaded",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(written)),
	)

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object at key. Deleting a missing object is not an error.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete object %s", key)
	}

	return nil
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewFileStorage),
)
