package registry

import (
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// Factory builds a component on first lookup.
type Factory func() (any, error)

// Container is a concurrency-safe component registry. It satisfies
// orchestration.Registry.
type Container struct {
	mu        sync.RWMutex
	instances map[string]any
	factories map[string]Factory
	group     singleflight.Group
}

// New creates an empty container.
func New() *Container {
	return &Container{
		instances: make(map[string]any),
		factories: make(map[string]Factory),
	}
}

// Set registers a ready instance under id.
func (c *Container) Set(id string, instance any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exists(id) {
		return apperrors.WrapError(apperrors.ErrDuplicateComponent, "registering %s", id)
	}
	c.instances[id] = instance
	return nil
}

// Factory registers a lazily built component under id. The factory runs at
// most once per successful build, even under concurrent Get calls; a
// failing build is retried on the next Get.
func (c *Container) Factory(id string, f Factory) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exists(id) {
		return apperrors.WrapError(apperrors.ErrDuplicateComponent, "registering %s", id)
	}
	c.factories[id] = f
	return nil
}

// MustSet is Set for static wiring; it panics on duplicates.
func (c *Container) MustSet(id string, instance any) {
	if err := c.Set(id, instance); err != nil {
		panic(err)
	}
}

// Has reports whether id is registered.
func (c *Container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.exists(id)
}

// Get returns the instance registered under id, building it if needed.
func (c *Container) Get(id string) (any, error) {
	c.mu.RLock()
	instance, ok := c.instances[id]
	factory, lazy := c.factories[id]
	c.mu.RUnlock()

	if ok {
		return instance, nil
	}
	if !lazy {
		return nil, apperrors.WrapError(apperrors.ErrResolution, "component %s", id)
	}

	v, err, _ := c.group.Do(id, func() (any, error) {
		c.mu.RLock()
		built, done := c.instances[id]
		c.mu.RUnlock()
		if done {
			return built, nil
		}
		built, err := factory()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.instances[id] = built
		delete(c.factories, id)
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, apperrors.WrapError(err, "building component %s", id)
	}
	return v, nil
}

// IDs returns every registered identifier in sorted order.
func (c *Container) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.instances)+len(c.factories))
	for id := range c.instances {
		ids = append(ids, id)
	}
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Container) exists(id string) bool {
	if _, ok := c.instances[id]; ok {
		return true
	}
	_, ok := c.factories[id]
	return ok
}
