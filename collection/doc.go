// Package collection holds the application state around signals: an ordered
// collection with a selected entry, an undo/redo history of every mutation,
// JSON persistence and the plot traces rendered from it.
//
// A Collection has a single owner and is not safe for concurrent use.
package collection
