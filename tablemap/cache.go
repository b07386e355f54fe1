package tablemap

import (
	"sync"

	"github.com/prosetree/tables/model"
)

// Maps are cached per table-node object. Because nodes are immutable and
// edits share unchanged subtrees by reference, pointer identity is the
// cache key; stale entries simply stop being referenced as the document
// moves on and get overwritten by the ring. Entries are never mutated, so
// concurrent lookups from editor instances sharing node objects at worst
// duplicate work.
const cacheSize = 12

var cache struct {
	sync.Mutex
	keys [cacheSize]*model.Node
	vals [cacheSize]*TableMap
	next int
}

func readFromCache(table *model.Node) *TableMap {
	cache.Lock()
	defer cache.Unlock()
	for i, key := range cache.keys {
		if key == table {
			return cache.vals[i]
		}
	}
	return nil
}

func addToCache(table *model.Node, m *TableMap) *TableMap {
	cache.Lock()
	defer cache.Unlock()
	cache.keys[cache.next] = table
	cache.vals[cache.next] = m
	cache.next = (cache.next + 1) % cacheSize
	return m
}
