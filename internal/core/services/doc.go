// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The fragment service is the single writer of the collection. Search
// is a pure function over a snapshot and never mutates anything.
package services
