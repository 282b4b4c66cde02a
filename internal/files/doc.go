// Package files finds reflection files under the data directory.
//
// Discovery walks a base directory and reports every file whose extension
// maps to a supported reflection format, with paths relative to the base so
// they can be passed straight back as comparison inputs.
package files
