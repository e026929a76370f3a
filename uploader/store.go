package uploader

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// objectAttrs are written alongside an object's bytes
type objectAttrs struct {
	ContentType string
	Metadata    map[string]string
}

// objectStore is the slice of a bucket the uploader needs
type objectStore interface {
	Write(ctx context.Context, object string, data []byte, attrs objectAttrs) error
	Compose(ctx context.Context, dst string, srcs []string, contentType string) error
	Size(ctx context.Context, object string) (int64, error)
	Delete(ctx context.Context, object string) error
	Close() error
}

// gcsStore implements objectStore on a Cloud Storage bucket
type gcsStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// newGCSStore creates a gRPC storage client. An Endpoint in the config
// targets an emulator with plaintext transport and no credentials.
func newGCSStore(ctx context.Context, config Config) (*gcsStore, error) {
	opts := []option.ClientOption{
		option.WithGRPCConnectionPool(config.GRPCPoolSize),
	}
	if config.Endpoint != "" {
		opts = append(opts,
			option.WithEndpoint(config.Endpoint),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := storage.NewGRPCClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &gcsStore{
		client: client,
		bucket: client.Bucket(config.Bucket),
	}, nil
}

func (s *gcsStore) Write(ctx context.Context, object string, data []byte, attrs objectAttrs) error {
	w := s.bucket.Object(object).NewWriter(ctx)
	// Objects are at most one chunk, send each in a single request
	w.ChunkSize = 0
	w.ContentType = attrs.ContentType
	w.Metadata = attrs.Metadata

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write error: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}
	return nil
}

func (s *gcsStore) Compose(ctx context.Context, dst string, srcs []string, contentType string) error {
	sources := make([]*storage.ObjectHandle, len(srcs))
	for i, src := range srcs {
		sources[i] = s.bucket.Object(src)
	}

	// GCS atomically combines the sources in order
	composer := s.bucket.Object(dst).ComposerFrom(sources...)
	composer.ContentType = contentType

	if _, err := composer.Run(ctx); err != nil {
		return fmt.Errorf("compose failed: %w", err)
	}
	return nil
}

func (s *gcsStore) Size(ctx context.Context, object string) (int64, error) {
	attrs, err := s.bucket.Object(object).Attrs(ctx)
	if err != nil {
		return 0, fmt.Errorf("attrs error: %w", err)
	}
	return attrs.Size, nil
}

func (s *gcsStore) Delete(ctx context.Context, object string) error {
	return s.bucket.Object(object).Delete(ctx)
}

func (s *gcsStore) Close() error {
	return s.client.Close()
}
