package mcts

import (
	"hasami/game"
	"sync"

	"golang.org/x/exp/slices"
)

// decision is a tree node for the position reached by a move of player.
type decision struct {
	sync.Mutex
	parent   *decision
	player   game.Color // Side that moved into this position
	hash     game.StateHash
	terminal bool
	moves    []game.Move
	children []*decision // children[i] follows moves[i]
	rewards  float64
	visits   int
}

func newDecision(parent *decision, state game.State) *decision {
	moves := state.LegalMoves(state.Turn)
	return &decision{
		parent:   parent,
		player:   state.Turn.Opponent(),
		hash:     state.Hash(),
		terminal: state.Winner() != game.Empty || len(moves) == 0,
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level: it adds the next unexpanded child or
// picks the best scoring one. expanded reports a new child; a terminal node
// returns itself.
func (d *decision) SelectOrExpand(state game.State) (child *decision, childState game.State, expanded bool) {
	d.Lock()
	defer d.Unlock()

	if d.terminal {
		return d, state, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		childState := state.Play(move)
		child := newDecision(d, childState)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, true
	}

	// Fully expanded node
	ith := d.pickChild()
	child = d.children[ith]
	child.applyLoss()
	return child, state.Play(d.moves[ith]), false
}

func (d *decision) pickChild() int {
	// Concurrent episodes can fill a node before any of them backs up
	n := float64(max(d.visits, 1))
	policy := newUCT(CSquared, n)

	maxIndex := 0
	maxScore := -1.0
	for i, child := range d.children {
		rewards, visits := child.stats()
		if score := policy.evaluate(rewards, float64(visits)); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss counts an episode in flight as lost so that concurrent episodes
// spread over other children.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) stats() (rewards float64, visits int) {
	d.Lock()
	defer d.Unlock()

	return d.rewards, d.visits
}

// Backup records the reward for this node's player and returns the parent.
func (d *decision) Backup(reward func(game.Color) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.player)
	d.visits++

	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// child returns the child reached by move, nil if it was never expanded.
func (d *decision) child(move game.Move) *decision {
	d.Lock()
	defer d.Unlock()

	for i, child := range d.children {
		if d.moves[i] == move {
			return child
		}
	}
	return nil
}

// best returns the most visited child's index, skipping moves in avoid unless
// nothing else was expanded. It returns -1 for a node without children.
func (d *decision) best(avoid []game.Move) int {
	d.Lock()
	defer d.Unlock()

	bestIndex, bestVisits := -1, -1
	fallbackIndex, fallbackVisits := -1, -1
	for i, child := range d.children {
		_, visits := child.stats()
		if slices.Contains(avoid, d.moves[i]) {
			if visits > fallbackVisits {
				fallbackIndex, fallbackVisits = i, visits
			}
			continue
		}
		if visits > bestVisits {
			bestIndex, bestVisits = i, visits
		}
	}
	if bestIndex < 0 {
		return fallbackIndex
	}
	return bestIndex
}

// depth is the length of the most visited line below d.
func (d *decision) depth() int {
	depth := 0
	for node := d; ; depth++ {
		i := node.best(nil)
		if i < 0 {
			return depth
		}
		node.Lock()
		next := node.children[i]
		node.Unlock()
		node = next
	}
}
