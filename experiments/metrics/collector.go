package metrics

import (
	"hasami/game"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type SearchMetric struct {
	Duration   time.Duration
	Depth      int // Deepest completed iteration
	Iterations int
	Nodes      int
	TTHits     int
	Cutoffs    int
	Aborted    bool // Last iteration was abandoned on the time budget
	Fallback   bool // No iteration completed and a random move was played
}

type MoveMetric struct {
	Step   int
	Player game.Color
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	ID             uuid.UUID
	StartingPlayer game.Color
	Winner         game.Color // Empty on a draw
	Reason         string
	Captures       [3]int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	AddNode()
	AddTTHit()
	AddCutoff()
	CompleteIteration(depth int)
	Abort()
	Fallback()
	Complete() SearchMetric
}

type collector struct {
	startTime  time.Time
	depth      atomic.Int32
	iterations atomic.Int32
	nodes      atomic.Int64
	ttHits     atomic.Int64
	cutoffs    atomic.Int64
	aborted    atomic.Bool
	fallback   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.depth.Store(0)
	m.iterations.Store(0)
	m.nodes.Store(0)
	m.ttHits.Store(0)
	m.cutoffs.Store(0)
	m.aborted.Store(false)
	m.fallback.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddTTHit() {
	m.ttHits.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) CompleteIteration(depth int) {
	m.depth.Store(int32(depth))
	m.iterations.Add(1)
}

func (m *collector) Abort() {
	m.aborted.Store(true)
}

func (m *collector) Fallback() {
	m.fallback.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:   time.Since(m.startTime),
		Depth:      int(m.depth.Load()),
		Iterations: int(m.iterations.Load()),
		Nodes:      int(m.nodes.Load()),
		TTHits:     int(m.ttHits.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Aborted:    m.aborted.Load(),
		Fallback:   m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                      {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) AddTTHit()                   {}
func (m *dummyCollector) AddCutoff()                  {}
func (m *dummyCollector) CompleteIteration(depth int) {}
func (m *dummyCollector) Abort()                      {}
func (m *dummyCollector) Fallback()                   {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
