// Package reflection reads single-crystal diffraction reflection lists.
//
// Four layouts are recognised by file extension:
//
//	.raw     SAINT integration output, fixed width 3I4,2F8 then detector columns
//	.fco     XD structure-factor list, 26 header lines, whitespace columns
//	         h k l Fc2 Fo2 sigma stl flag
//	.sortav  SORTAV averaged data; everything from a 'c' to end of line is a comment
//	.hkl     XD when the first line has four tokens including NDAT (one header
//	         line, columns h k l - I sigma), otherwise SHELX HKLF 4 fixed width
//	         with a 17-line trailer
//
// Blank lines are ignored. Any field that fails numeric conversion aborts the
// parse with a FORMAT error carrying the path and 1-based line number.
package reflection
