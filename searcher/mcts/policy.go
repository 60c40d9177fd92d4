package mcts

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards estimate the chance of winning
const Win = 1.0
const Loss = 1 - Win

// Evaluation difference worth a one in e odds ratio at a rollout cutoff
const evalScale = 100.0

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// squash maps an evaluation to a reward between Loss and Win.
func squash(score float64) float64 {
	return Loss + (Win-Loss)/(1+math.Exp(-score/evalScale))
}
