package slider

import (
	"sync"
	"time"
)

var images = &imageCache{}

// imageCache holds decoded images keyed by file path or URL.
// An entry loaded from a file is stale once the file's modification time differs.
type imageCache struct {
	m sync.Map
}

// load returns the image for key when it was decoded from a source last modified at modTime.
// URLs carry a zero modTime and never go stale.
func (c *imageCache) load(key string, modTime time.Time) (*Image, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	i, ok := v.(*Image)
	if !ok || !i.modTime.Equal(modTime) {
		c.m.Delete(key)
		return nil, false
	}
	return i, true
}

func (c *imageCache) store(key string, i *Image) {
	if i == nil {
		return
	}
	c.m.Store(key, i)
}
