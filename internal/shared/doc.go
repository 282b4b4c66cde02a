// Package shared holds helpers used by more than one package that belong to no
// single domain layer.
//
// The testutil subpackage provides a capturing slog handler for asserting on
// log output, and generators that write small reflection files in each of the
// supported layouts (.raw, .fco, .sortav, SHELX and XD .hkl) into a test's
// temporary directory.
//
//	func TestLoad(t *testing.T) {
//	    dir := t.TempDir()
//	    path := testutil.WriteFixture(t, dir, "a.hkl", testutil.SHELX(rows))
//	    ...
//	}
package shared
