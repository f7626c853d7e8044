// Package analysis derives structural properties of a signal from its
// analysis-mode samples: half-window periodicity, even and odd symmetry,
// energy, average power and the energy/power classification.
//
// Properties are recomputed from scratch on every call; nothing is cached
// between calls and the signal is never modified.
package analysis
