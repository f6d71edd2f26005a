package xmldom

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// textBuffer is a reusable growable character buffer. Reader
// and Parser acquire one per in-flight token (name, attribute value, text
// run, ...), fill it, read it back via value/dropBack/valueAndClear, and
// release it.
type textBuffer struct {
	runes   []rune
	encoded bool // true once content known to already carry XML escapes
	id      int
}

// value returns the buffer's current contents as a string.
func (b *textBuffer) value() string {
	return string(b.runes)
}

// dropBack removes the last k runes from the buffer, used when a reader
// over-consumes a delimiter and needs to back it out.
func (b *textBuffer) dropBack(k int) {
	if k <= 0 {
		return
	}
	if k > len(b.runes) {
		k = len(b.runes)
	}
	b.runes = b.runes[:len(b.runes)-k]
}

// valueAndClear returns the contents and empties the buffer in one step,
// the common "take what I built, then reset for next use" pattern.
func (b *textBuffer) valueAndClear() string {
	s := b.value()
	b.runes = b.runes[:0]
	return s
}

func (b *textBuffer) writeRune(r rune) {
	b.runes = append(b.runes, r)
}

func (b *textBuffer) writeString(s string) {
	for _, r := range s {
		b.runes = append(b.runes, r)
	}
}

// bufferPool is a pool of textBuffers with bounded retention. Acquisitions
// beyond the pool's capacity simply allocate a new buffer rather than
// blocking; releases beyond capacity are dropped instead of growing the
// free list without bound.
type bufferPool struct {
	mu     sync.Mutex
	free   *lru.Cache
	nextID int
}

const defaultBufferPoolCapacity = 32

func newBufferPool() *bufferPool {
	return &bufferPool{free: lru.New(defaultBufferPoolCapacity)}
}

// acquire returns a free buffer from the pool, or allocates a new one if
// none is available.
func (p *bufferPool) acquire() *textBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	// lru.Cache has no "pop any" primitive, so free buffers are tracked
	// under their ids and RemoveOldest hands back the least-recently-released
	// one (any choice is valid since all pooled buffers are equivalent).
	if p.free.Len() > 0 {
		key, value, ok := p.free.RemoveOldest()
		if ok {
			_ = key
			return value.(*textBuffer)
		}
	}
	p.nextID++
	return &textBuffer{id: p.nextID}
}

// release clears the buffer's length (retaining its capacity) and returns
// it to the pool. Releases beyond the pool's bounded capacity cause
// groupcache/lru to evict the oldest entry rather than growing unbounded.
func (p *bufferPool) release(b *textBuffer) {
	if b == nil {
		return
	}
	b.runes = b.runes[:0]
	b.encoded = false
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free.Add(b.id, b)
}

// withBuffer acquires a buffer, passes it to fn, and guarantees release on
// every exit path including a panic unwinding through fn.
func (p *bufferPool) withBuffer(fn func(*textBuffer) error) (err error) {
	b := p.acquire()
	defer p.release(b)
	return fn(b)
}
