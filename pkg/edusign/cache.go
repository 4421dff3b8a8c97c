package edusign

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// groupCache is a bounded cache of groups keyed by group ID. A nil
// *groupCache is a valid, always-empty cache.
type groupCache struct {
	entries *lru.Cache[string, *Group]
}

func newGroupCache(size int) (*groupCache, error) {
	if size < 0 {
		return nil, nil
	}
	entries, err := lru.New[string, *Group](size)
	if err != nil {
		return nil, err
	}
	return &groupCache{entries: entries}, nil
}

func (c *groupCache) get(id string) (*Group, bool) {
	if c == nil {
		return nil, false
	}
	group, ok := c.entries.Get(id)
	if !ok {
		return nil, false
	}
	return group.Clone(), true
}

func (c *groupCache) add(group *Group) {
	if c == nil || group == nil || group.ID == "" {
		return
	}
	c.entries.Add(group.ID, group.Clone())
}

func (c *groupCache) remove(id string) {
	if c == nil {
		return
	}
	c.entries.Remove(id)
}

func (c *groupCache) purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}

func (c *groupCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
