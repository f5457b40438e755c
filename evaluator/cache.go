package evaluator

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/zobrist"
)

const (
	entrySize = 16

	MinCachePower = 12
	MaxCachePower = 24
)

type cacheEntry struct {
	key   uint64
	score int32
	valid bool
}

// Cache memoizes another evaluator, keyed by the Zobrist hash of the
// position. It is a direct-mapped table: a colliding store simply
// overwrites the older entry. Safe for concurrent use.
type Cache struct {
	inner   Evaluator
	zobrist *zobrist.Zobrist

	mu           sync.Mutex
	table        []cacheEntry
	sizePowerOf2 int
	sizeMask     uint64

	lookups atomic.Uint64
	hits    atomic.Uint64
}

// NewCache wraps inner with a table that takes up roughly fractionOfMemory
// of system memory, clamped to [2^MinCachePower, 2^MaxCachePower] entries.
func NewCache(inner Evaluator, fractionOfMemory float64) *Cache {
	c := &Cache{inner: inner, zobrist: &zobrist.Zobrist{}}
	c.zobrist.Initialize()

	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	power := MinCachePower
	if desiredNElems >= 1 {
		power = int(math.Log2(desiredNElems))
	}
	power = min(max(power, MinCachePower), MaxCachePower)
	c.sizePowerOf2 = power
	numElems := 1 << power
	c.sizeMask = uint64(numElems - 1)
	c.table = make([]cacheEntry, numElems)

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Uint64("total-system-memory-bytes", totalMem).
		Str("mode", inner.Mode().String()).
		Msg("evaluation-cache-size")
	return c
}

func (c *Cache) Mode() Mode {
	return c.inner.Mode()
}

func (c *Cache) Evaluate(b board.Board) int {
	key := c.zobrist.Hash(b)
	idx := key & c.sizeMask
	c.lookups.Add(1)

	c.mu.Lock()
	e := c.table[idx]
	c.mu.Unlock()
	if e.valid && e.key == key {
		c.hits.Add(1)
		return int(e.score)
	}

	score := c.inner.Evaluate(b)
	c.mu.Lock()
	c.table[idx] = cacheEntry{key: key, score: int32(score), valid: true}
	c.mu.Unlock()
	return score
}

func (c *Cache) Size() int {
	return len(c.table)
}

func (c *Cache) Lookups() uint64 {
	return c.lookups.Load()
}

func (c *Cache) Hits() uint64 {
	return c.hits.Load()
}
