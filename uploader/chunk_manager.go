package uploader

import (
	"context"
	"fmt"
	"log"
)

// composer stitches chunk objects into one, nesting compose calls when there
// are more chunks than a single call accepts
type composer struct {
	store    objectStore
	maxFanIn int
}

func newComposer(store objectStore, maxFanIn int) *composer {
	if maxFanIn <= 1 {
		maxFanIn = 32 // GCS limit
	}
	return &composer{store: store, maxFanIn: maxFanIn}
}

// Compose writes the concatenation of chunks to object. Intermediate objects
// are removed before returning; the chunks themselves are left to the caller.
func (c *composer) Compose(ctx context.Context, object string, chunks []string, contentType string) error {
	return c.compose(ctx, object, chunks, contentType, 0)
}

func (c *composer) compose(ctx context.Context, object string, chunks []string, contentType string, level int) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to compose")
	}
	if len(chunks) <= c.maxFanIn {
		return c.store.Compose(ctx, object, chunks, contentType)
	}

	var intermediates []string
	for i := 0; i < len(chunks); i += c.maxFanIn {
		end := min(i+c.maxFanIn, len(chunks))
		name := fmt.Sprintf("%s.intermediate.%d.%d", object, level, i/c.maxFanIn)

		if err := c.store.Compose(ctx, name, chunks[i:end], contentType); err != nil {
			c.cleanup(ctx, intermediates)
			return fmt.Errorf("failed to compose intermediate object %s: %w", name, err)
		}
		intermediates = append(intermediates, name)
	}

	err := c.compose(ctx, object, intermediates, contentType, level+1)
	c.cleanup(ctx, intermediates)
	return err
}

func (c *composer) cleanup(ctx context.Context, objects []string) {
	for _, obj := range objects {
		if err := c.store.Delete(ctx, obj); err != nil {
			log.Printf("[WARNING] Failed to cleanup object %s: %v", obj, err)
		}
	}
}
