package pulse

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2"
)

// PipelineCache holds one Pipeline per output format. A pipeline only needs
// to be rebuilt if the surface format changes.
type PipelineCache struct {
	device Device
	source string
	cache  *lru.Cache[TextureFormat, *Pipeline]
}

func NewPipelineCache(device Device, source string) *PipelineCache {
	cache, _ := lru.NewWithEvict[TextureFormat, *Pipeline](4, releasePipelineOnEviction)

	return &PipelineCache{
		device: device,
		source: source,
		cache:  cache,
	}
}

func (pc *PipelineCache) Get(format TextureFormat) (*Pipeline, error) {
	cached, ok := pc.cache.Get(format)
	if ok {
		return cached, nil
	}

	slog.Debug("Build pipeline", slog.String("format", format.String()))

	pipeline, err := BuildPipeline(pc.device, format, pc.source)
	if err != nil {
		return nil, fmt.Errorf("build pipeline for %s: %w", format, err)
	}

	pc.cache.Add(format, pipeline)

	return pipeline, nil
}

func (pc *PipelineCache) Len() int {
	return pc.cache.Len()
}

// Purge releases all cached pipelines.
func (pc *PipelineCache) Purge() {
	pc.cache.Purge()
}

func releasePipelineOnEviction(_ TextureFormat, pipeline *Pipeline) {
	pipeline.Release()
}
