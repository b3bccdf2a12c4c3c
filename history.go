package palette

import "github.com/gogpu/palette/internal/bufpool"

// DefaultHistoryCapacity is the number of strokes that can be undone.
const DefaultHistoryCapacity = 60

// snapshot is a deep copy of every layer's pixels, by stack position.
type snapshot struct {
	seq    uint64
	layers [][]byte
}

// History is the stroke-granular undo/redo manager.
//
// Push records the whole layer stack once per stroke, before the stroke
// mutates anything. The undo stack is bounded (oldest entries are evicted);
// the redo stack is unbounded and cleared by every Push. Snapshots are
// copies, and their buffers are recycled through a pool once they are
// evicted or consumed.
//
// Undo immediately followed by Redo restores the exact pre-undo pixels.
//
// Thread safety: History is not safe for concurrent access.
type History struct {
	capacity int
	undo     []snapshot
	redo     []snapshot
	seq      uint64
	pool     *bufpool.Pool
}

// NewHistory creates a history holding up to capacity undo steps.
// A non-positive capacity selects DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		capacity: capacity,
		undo:     make([]snapshot, 0, capacity),
		pool:     bufpool.New(8),
	}
}

// Capacity returns the maximum undo depth.
func (h *History) Capacity() int { return h.capacity }

// Depth returns the number of undoable strokes.
func (h *History) Depth() int { return len(h.undo) }

// RedoDepth returns the number of redoable strokes.
func (h *History) RedoDepth() int { return len(h.redo) }

// Seq returns the ordering tag of the newest undo step, or 0 when there is
// nothing to undo. Tags increase with every snapshot taken.
func (h *History) Seq() uint64 {
	if len(h.undo) == 0 {
		return 0
	}
	return h.undo[len(h.undo)-1].seq
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Push records the current state of s as a new undo step and clears the
// redo stack.
func (h *History) Push(s *LayerStack) {
	h.pushUndo(h.capture(s))
	h.clearRedo()
}

// Undo restores the most recent snapshot, saving the live state for Redo.
// It reports false and does nothing when there is nothing to undo.
func (h *History) Undo(s *LayerStack) bool {
	if len(h.undo) == 0 {
		return false
	}
	sn := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = snapshot{}
	h.undo = h.undo[:len(h.undo)-1]

	h.redo = append(h.redo, h.capture(s))
	h.restore(s, sn)
	h.release(sn)
	return true
}

// Redo re-applies the most recently undone snapshot, saving the live state
// for Undo. It reports false and does nothing when there is nothing to redo.
func (h *History) Redo(s *LayerStack) bool {
	if len(h.redo) == 0 {
		return false
	}
	sn := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = snapshot{}
	h.redo = h.redo[:len(h.redo)-1]

	h.pushUndo(h.capture(s))
	h.restore(s, sn)
	h.release(sn)
	return true
}

// Clear drops every undo and redo step.
func (h *History) Clear() {
	for _, sn := range h.undo {
		h.release(sn)
	}
	clear(h.undo)
	h.undo = h.undo[:0]
	h.clearRedo()
}

func (h *History) pushUndo(sn snapshot) {
	if len(h.undo) >= h.capacity {
		h.release(h.undo[0])
		copy(h.undo, h.undo[1:])
		h.undo[len(h.undo)-1] = snapshot{}
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.undo = append(h.undo, sn)
}

func (h *History) clearRedo() {
	for _, sn := range h.redo {
		h.release(sn)
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

func (h *History) capture(s *LayerStack) snapshot {
	h.seq++
	sn := snapshot{seq: h.seq, layers: make([][]byte, s.Len())}
	for i, l := range s.layers {
		buf := h.pool.Get(len(l.pixmap.data))
		copy(buf, l.pixmap.data)
		sn.layers[i] = buf
	}
	return sn
}

// restore copies a snapshot into the live layers by stack position. When
// the layer count changed since the snapshot, only positions present in
// both are restored.
func (h *History) restore(s *LayerStack, sn snapshot) {
	n := min(len(sn.layers), s.Len())
	for i := 0; i < n; i++ {
		copy(s.layers[i].pixmap.data, sn.layers[i])
	}
}

func (h *History) release(sn snapshot) {
	for _, buf := range sn.layers {
		h.pool.Put(buf)
	}
}
