// Package uploader publishes rendered chart files to a Cloud Storage bucket.
package uploader

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// Uploader copies local files into a bucket under a per-run object prefix
type Uploader struct {
	config   Config
	store    objectStore
	composer *composer
	runID    string

	stats   Stats
	statsMu sync.RWMutex
}

// Stats tracks upload statistics
type Stats struct {
	TotalFiles    int64
	Successful    int64
	Failed        int64
	TotalBytes    int64
	TotalDuration time.Duration
}

// Result is the outcome of publishing one file
type Result struct {
	Path     string
	Object   string
	Bytes    int64
	Attempts int
	Err      error
}

// New creates an uploader backed by a gRPC Cloud Storage client
func New(ctx context.Context, config Config) (*Uploader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store, err := newGCSStore(ctx, config)
	if err != nil {
		return nil, err
	}
	return newWithStore(config, store), nil
}

func newWithStore(config Config, store objectStore) *Uploader {
	return &Uploader{
		config:   config,
		store:    store,
		composer: newComposer(store, config.MaxChunksPerCompose),
		runID:    uuid.NewString(),
	}
}

// RunID identifies this uploader's objects in the bucket
func (u *Uploader) RunID() string {
	return u.runID
}

// Close releases the storage client
func (u *Uploader) Close() error {
	return u.store.Close()
}

// GetStats returns current upload statistics
func (u *Uploader) GetStats() Stats {
	u.statsMu.RLock()
	defer u.statsMu.RUnlock()
	return u.stats
}

// Upload publishes every path, at most Concurrency at a time. Each file is
// independent: one failure never stops the others. Results keep input order.
func (u *Uploader) Upload(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(u.config.Concurrency)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			results[i] = u.uploadFileWithRetry(ctx, p)
			return nil
		})
	}
	g.Wait()

	return results
}

// ObjectName returns the object a local file is published as
func (u *Uploader) ObjectName(filePath string) string {
	return path.Join(u.config.ObjectPrefix, u.runID, filepath.Base(filePath))
}

// uploadFileWithRetry uploads a file with retry logic
func (u *Uploader) uploadFileWithRetry(ctx context.Context, filePath string) Result {
	res := Result{Path: filePath, Object: u.ObjectName(filePath)}
	start := time.Now()

	var lastErr error
retry:
	for attempt := 0; attempt <= u.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				lastErr = fmt.Errorf("upload canceled: %w", ctx.Err())
				break retry
			case <-time.After(u.config.RetryDelay):
			}
		}

		res.Attempts++
		n, err := u.uploadFile(ctx, filePath, res.Object)
		if err == nil {
			res.Bytes = n
			u.record(res, time.Since(start))
			return res
		}

		lastErr = err
		if attempt < u.config.MaxRetries {
			log.Printf("[WARNING] Upload attempt %d/%d failed for %s: %v, retrying...", attempt+1, u.config.MaxRetries+1, filePath, err)
		}
	}

	res.Err = fmt.Errorf("upload failed after %d attempts: %w", res.Attempts, lastErr)
	log.Printf("[ERROR] Failed to upload %s: %v", filePath, res.Err)
	u.record(res, time.Since(start))
	return res
}

func (u *Uploader) record(res Result, d time.Duration) {
	u.statsMu.Lock()
	defer u.statsMu.Unlock()

	u.stats.TotalFiles++
	if res.Err != nil {
		u.stats.Failed++
		return
	}
	u.stats.Successful++
	u.stats.TotalBytes += res.Bytes
	u.stats.TotalDuration += d
}

// uploadFile publishes a single file, splitting it into parallel chunks
// when it is larger than ChunkSize
func (u *Uploader) uploadFile(ctx context.Context, filePath, object string) (int64, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	attrs := objectAttrs{
		ContentType: contentType(filePath),
		Metadata:    map[string]string{"run-id": u.runID, "source": filepath.Base(filePath)},
	}

	if len(buf) <= u.config.ChunkSize {
		if err := u.store.Write(ctx, object, buf, attrs); err != nil {
			return 0, err
		}
	} else if err := u.uploadParallel(ctx, object, buf, attrs); err != nil {
		return 0, fmt.Errorf("parallel upload failed: %w", err)
	}

	size, err := u.store.Size(ctx, object)
	if err != nil {
		return 0, fmt.Errorf("failed to get object attributes: %w", err)
	}
	if size != int64(len(buf)) {
		_ = u.store.Delete(ctx, object)
		return 0, fmt.Errorf("size mismatch: expected %d bytes, got %d bytes", len(buf), size)
	}
	return size, nil
}

// uploadParallel uploads chunks in parallel and composes them into the final object
func (u *Uploader) uploadParallel(ctx context.Context, object string, buf []byte, attrs objectAttrs) error {
	chunkSize := u.config.ChunkSize
	numChunks := (len(buf) + chunkSize - 1) / chunkSize

	tempPrefix := fmt.Sprintf("%s.tmp.%d", object, time.Now().UnixNano())
	chunks := make([]string, numChunks)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("%s.chunk.%d", tempPrefix, i)
	}
	defer u.composer.cleanup(context.WithoutCancel(ctx), chunks)

	g, gctx := errgroup.WithContext(ctx)
	for i := range chunks {
		i := i
		offset := i * chunkSize
		end := min(offset+chunkSize, len(buf))
		g.Go(func() error {
			chunkAttrs := objectAttrs{ContentType: "application/octet-stream"}
			if err := u.store.Write(gctx, chunks[i], buf[offset:end], chunkAttrs); err != nil {
				return fmt.Errorf("chunk %d failed: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := u.composer.Compose(ctx, object, chunks, attrs.ContentType); err != nil {
		return fmt.Errorf("compose error: %w", err)
	}
	return nil
}

func contentType(filePath string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filePath))]; ok {
		return ct
	}
	return "application/octet-stream"
}
