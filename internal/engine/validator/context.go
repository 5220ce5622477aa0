package validator

import "github.com/kitsnotes/hollywood/internal/core/domain"

// checkContext carries the uniqueness trackers of one validation run.
// Rules only touch trackers under their own key.
type checkContext struct {
	doc    *domain.Document
	seen   map[domain.Key]map[string]int
	counts map[domain.Key]map[string]int
	sets   map[domain.Key]map[string]map[string]struct{}
	disks  map[string]*domain.DiskCursor
}

func newCheckContext(doc *domain.Document) *checkContext {
	return &checkContext{
		doc:    doc,
		seen:   make(map[domain.Key]map[string]int),
		counts: make(map[domain.Key]map[string]int),
		sets:   make(map[domain.Key]map[string]map[string]struct{}),
		disks:  make(map[string]*domain.DiskCursor),
	}
}

// mark records id under key at line. It reports whether id was already
// marked, and the line it was first marked at.
func (cc *checkContext) mark(key domain.Key, id string, line int) (int, bool) {
	ids := cc.seen[key]
	if ids == nil {
		ids = make(map[string]int)
		cc.seen[key] = ids
	}
	if first, ok := ids[id]; ok {
		return first, true
	}
	ids[id] = line
	return line, false
}

// once marks the key itself. It reports true for every entry after the first.
func (cc *checkContext) once(key domain.Key, line int) bool {
	_, dup := cc.mark(key, "", line)
	return dup
}

// inc increments and returns the counter for id under key.
func (cc *checkContext) inc(key domain.Key, id string) int {
	c := cc.counts[key]
	if c == nil {
		c = make(map[string]int)
		cc.counts[key] = c
	}
	c[id]++
	return c[id]
}

// addToSet adds member to the set named id under key. It reports false when
// member was already present.
func (cc *checkContext) addToSet(key domain.Key, id, member string) bool {
	sets := cc.sets[key]
	if sets == nil {
		sets = make(map[string]map[string]struct{})
		cc.sets[key] = sets
	}
	set := sets[id]
	if set == nil {
		set = make(map[string]struct{})
		sets[id] = set
	}
	if _, ok := set[member]; ok {
		return false
	}
	set[member] = struct{}{}
	return true
}

// setSize returns the number of members in the set named id under key.
func (cc *checkContext) setSize(key domain.Key, id string) int {
	return len(cc.sets[key][id])
}

// advance moves the partition cursor of dev past size.
func (cc *checkContext) advance(dev string, size domain.Size) error {
	c := cc.disks[dev]
	if c == nil {
		start := domain.NewDiskCursor()
		c = &start
		cc.disks[dev] = c
	}
	return c.Advance(size)
}
