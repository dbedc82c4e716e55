// Package hmm implements a discrete Hidden Markov Model with the two
// classic inference passes over an observation sequence:
//
//   - Likelihood runs the forward algorithm (sum-product) and returns the
//     total probability of the sequence over every hidden path.
//   - Decode runs the Viterbi algorithm (max-product) and reconstructs the
//     single most probable hidden path from backpointers.
//
// A model is described by a Definition keyed by caller-chosen state and
// observation types and compiled once by New into dense tables indexed by
// each state's position in Definition.States. The compiled Model is
// immutable, so any number of goroutines may run inference against it.
//
// Two pseudo-states anchor the boundaries of every path. Start only
// appears as the source of the initial transitions and End only as the
// target of the final ones; neither is ever part of a decoded path. A
// state without an explicit transition into End terminates with
// probability 1.
//
// Viterbi scans candidate predecessors in state order and keeps the
// running maximum with a non-strict comparison, so among equally probable
// predecessors the later state wins. The same rule selects the final
// state. Probabilities are multiplied directly; long sequences underflow
// to zero rather than switching to log space.
package hmm
