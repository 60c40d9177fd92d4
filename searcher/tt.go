package searcher

import "hasami/game"

type TTFlag uint8

const (
	Exact TTFlag = iota
	Lower        // Value is a lower bound (search failed high)
	Upper        // Value is an upper bound (search failed low)
)

type TTEntry struct {
	Value float64
	Depth int
	Flag  TTFlag
	Move  game.Move
}

// TranspositionTable caches search results by position hash. It is cleared
// wholesale once it grows past its cap.
type TranspositionTable struct {
	capacity int
	entries  map[game.StateHash]TTEntry
}

func NewTranspositionTable(capacity int) *TranspositionTable {
	return &TranspositionTable{
		capacity: capacity,
		entries:  make(map[game.StateHash]TTEntry),
	}
}

func (t *TranspositionTable) Probe(hash game.StateHash) (TTEntry, bool) {
	entry, ok := t.entries[hash]
	return entry, ok
}

func (t *TranspositionTable) Store(hash game.StateHash, entry TTEntry) {
	if len(t.entries) >= t.capacity {
		if _, ok := t.entries[hash]; !ok {
			t.Clear()
		}
	}
	t.entries[hash] = entry
}

func (t *TranspositionTable) Len() int {
	return len(t.entries)
}

func (t *TranspositionTable) Clear() {
	clear(t.entries)
}

// scoreToTT makes win and loss scores relative to the stored node rather than
// the root, so they stay valid when the position is reached at another ply.
func scoreToTT(value float64, ply int) float64 {
	switch {
	case value > mateBound:
		return value + float64(ply)
	case value < -mateBound:
		return value - float64(ply)
	default:
		return value
	}
}

func scoreFromTT(value float64, ply int) float64 {
	switch {
	case value > mateBound:
		return value - float64(ply)
	case value < -mateBound:
		return value + float64(ply)
	default:
		return value
	}
}
