// Package core provides the game logic for the linkdots puzzle: the board,
// crossing detection, the path engine and the level generator.
// This package is UI-agnostic and deterministic.
package core
