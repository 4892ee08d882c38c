package chat

import (
	"context"
	"log/slog"
	"sync"

	"nova/internal/service/llm"
)

// Catalog aggregates the model listings of both backends for presentation.
// Sources are queried concurrently; a source that fails contributes zero
// entries and the aggregate call never fails as a whole. Cloud entries come
// first, local entries second.
type Catalog struct {
	cloud  llm.ModelLister // nil when no API key is configured
	local  llm.ModelLister
	logger *slog.Logger
}

// NewCatalog creates a Catalog. Either source may be nil.
func NewCatalog(cloud, local llm.ModelLister, logger *slog.Logger) *Catalog {
	return &Catalog{
		cloud:  cloud,
		local:  local,
		logger: logger,
	}
}

// ListModels returns the merged model list. Never returns an error; an
// unreachable source is logged and skipped.
func (c *Catalog) ListModels(ctx context.Context) []llm.ModelEntry {
	var (
		wg          sync.WaitGroup
		cloudModels []llm.ModelEntry
		localModels []llm.ModelEntry
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cloudModels = c.listSource(ctx, "cloud", c.cloud)
	}()
	go func() {
		defer wg.Done()
		localModels = c.listSource(ctx, "local", c.local)
	}()
	wg.Wait()

	merged := make([]llm.ModelEntry, 0, len(cloudModels)+len(localModels))
	merged = append(merged, cloudModels...)
	merged = append(merged, localModels...)
	return merged
}

func (c *Catalog) listSource(ctx context.Context, name string, source llm.ModelLister) []llm.ModelEntry {
	if source == nil {
		return nil
	}
	models, err := source.ListModels(ctx)
	if err != nil {
		c.logger.Warn("model listing source failed", "source", name, "error", err)
		return nil
	}
	return models
}
