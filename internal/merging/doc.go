// Package merging groups symmetry-equivalent reflections of one dataset and
// joins two such groupings on their canonical index.
//
// Aggregate is rebuilt from scratch whenever the data or the Laue class
// changes. Merge is an inner join; indices seen in only one dataset are
// returned separately so callers can report them.
package merging
