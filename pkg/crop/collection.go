package crop

import "github.com/menta2k/circlecrop/pkg/geometry"

// Collection is the ordered set of regions over one image. Order is creation
// order; it is both the draw order and the hit-test order.
type Collection struct {
	regions []*Region
}

// NewCollection returns an empty collection
func NewCollection() *Collection {
	return &Collection{}
}

// Len returns the number of regions
func (c *Collection) Len() int { return len(c.regions) }

// At returns the region at index i, or nil when out of range
func (c *Collection) At(i int) *Region {
	if i < 0 || i >= len(c.regions) {
		return nil
	}
	return c.regions[i]
}

// All returns the regions in collection order. The slice is a copy; the
// regions are shared.
func (c *Collection) All() []*Region {
	out := make([]*Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Insert appends r as the newest region
func (c *Collection) Insert(r *Region) {
	if r == nil {
		return
	}
	c.regions = append(c.regions, r)
}

// Remove deletes r by identity and reports whether it was present
func (c *Collection) Remove(r *Region) bool {
	i := c.Index(r)
	if i < 0 {
		return false
	}
	c.regions = append(c.regions[:i], c.regions[i+1:]...)
	return true
}

// Index returns the position of r by identity, or -1
func (c *Collection) Index(r *Region) int {
	for i, existing := range c.regions {
		if existing == r {
			return i
		}
	}
	return -1
}

// HitTest returns the first region in collection order containing the point.
// Overlaps therefore resolve to the oldest region even though newer regions
// are drawn on top of it.
func (c *Collection) HitTest(px, py float64) *Region {
	for _, r := range c.regions {
		if geometry.IsInside(px, py, r.Square()) {
			return r
		}
	}
	return nil
}

// Clear removes every region
func (c *Collection) Clear() {
	c.regions = nil
}

// SetDisplayName updates the display name of the region at index i
func (c *Collection) SetDisplayName(i int, name string) bool {
	r := c.At(i)
	if r == nil {
		return false
	}
	r.DisplayName = name
	return true
}

// SetUsername updates the username of the region at index i
func (c *Collection) SetUsername(i int, name string) bool {
	r := c.At(i)
	if r == nil {
		return false
	}
	r.Username = name
	return true
}
