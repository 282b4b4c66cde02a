// Package dataset tracks one reflection file through its lifecycle:
// empty, loading, loaded, merged or error. Illegal moves return STATE
// errors instead of silently overwriting data.
package dataset
