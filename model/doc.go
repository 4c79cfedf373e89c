// Package model contains the computation tree evaluated by the engine.
//
// A tree is built from Node values: Matrix leaves hold a concrete row-major
// array, operator nodes (add, multiply, negate, transpose) hold their operands
// as ordered children. The engine resolves the tree bottom-up by replacing
// operator nodes with Matrix leaves until the root itself is a Matrix. Nodes
// may be shared by several parents; resolution never mutates a leaf's data.
package model
