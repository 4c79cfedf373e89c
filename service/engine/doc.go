// Package engine resolves a computation tree bottom-up. Each step picks the
// leftmost-deepest operator whose operands are all matrices, splits it into
// one task per row of the left operand, runs the batch on the scheduler and
// folds the result back into the tree.
package engine
