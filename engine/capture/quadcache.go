package capture

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// QuadCacheSize is the number of uploaded quads each capture window keeps.
const QuadCacheSize = 1 << 10

// quadKey identifies a quad by its four corner positions followed by its
// four texture coordinates.
type quadKey [8]geom.Vec2

// quadCache keeps uploaded quad meshes keyed by their geometry. Meshes that
// fall out of the cache are deleted on the GPU.
type quadCache struct {
	gpu  core.GPU
	lru  *lru.Cache[quadKey, core.Mesh]
	hits uint64
}

func newQuadCache(gpu core.GPU, size int) *quadCache {
	c, err := lru.NewWithEvict(size, func(_ quadKey, m core.Mesh) {
		gpu.DeleteMesh(m)
	})
	if err != nil {
		panic(fmt.Sprintf("capture: quad cache of size %d: %v", size, err))
	}
	return &quadCache{gpu: gpu, lru: c}
}

// get returns the mesh for the quad, uploading it on a miss.
func (c *quadCache) get(pos, uv [4]geom.Vec2) (core.Mesh, error) {
	var k quadKey
	copy(k[:4], pos[:])
	copy(k[4:], uv[:])

	if m, ok := c.lru.Get(k); ok {
		c.hits++
		return m, nil
	}
	m, err := c.gpu.CreateQuads(pos[:], uv[:])
	if err != nil {
		return core.Mesh{}, fmt.Errorf("upload quad: %w", err)
	}
	c.lru.Add(k, m)
	return m, nil
}

func (c *quadCache) len() int { return c.lru.Len() }

// purge deletes every cached mesh.
func (c *quadCache) purge() { c.lru.Purge() }
