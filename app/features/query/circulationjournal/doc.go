// Package circulationjournal replays the journal of a material: every checkout, return
// and stock addition in the order they occurred, decoded back into domain events.
package circulationjournal
