package paging

import (
	"container/list"
)

// LRUReplacer implements LRU (Least Recently Used) replacement policy.
// The list holds exactly the resident pages, oldest at the front.
type LRUReplacer struct {
	lruList *list.List
	lruMap  map[Page]*list.Element
}

// NewLRUReplacer creates a new LRU replacer
func NewLRUReplacer(capacity int) *LRUReplacer {
	return &LRUReplacer{
		lruList: list.New(),
		lruMap:  make(map[Page]*list.Element, capacity),
	}
}

// Policy returns PolicyLRU
func (lru *LRUReplacer) Policy() Policy {
	return PolicyLRU
}

// Admit adds a page to the back of the list (most recently used)
func (lru *LRUReplacer) Admit(page Page) {
	if elem, exists := lru.lruMap[page]; exists {
		lru.lruList.MoveToBack(elem)
		return
	}
	lru.lruMap[page] = lru.lruList.PushBack(page)
}

// Touch moves a resident page to the back of the list
func (lru *LRUReplacer) Touch(page Page) {
	if elem, exists := lru.lruMap[page]; exists {
		lru.lruList.MoveToBack(elem)
	}
}

// Victim pops the least recently used page and returns its grid index
func (lru *LRUReplacer) Victim(grid *MemoryGrid) (int, bool) {
	oldest := lru.lruList.Front()
	if oldest == nil {
		return 0, false
	}

	page := oldest.Value.(Page)
	lru.lruList.Remove(oldest)
	delete(lru.lruMap, page)

	return grid.Locate(page)
}

// Replaced pushes the incoming page to the back of the list
func (lru *LRUReplacer) Replaced(_ int, page Page) {
	lru.Admit(page)
}

// Order returns the recency queue, oldest first
func (lru *LRUReplacer) Order() []Page {
	order := make([]Page, 0, lru.lruList.Len())
	for e := lru.lruList.Front(); e != nil; e = e.Next() {
		order = append(order, e.Value.(Page))
	}
	return order
}

// Size returns the number of tracked pages
func (lru *LRUReplacer) Size() int {
	return lru.lruList.Len()
}
