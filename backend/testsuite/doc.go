/*
testsuite is meant to be run by implementors of backends to ensure that the behaviors of their backend match the
expected behavior of the azfs.Backend interface.

	func TestConformance(t *testing.T) {
		testsuite.RunBackendTests(t, mem.NewFileSystem(), "data")
	}

The container must exist (or spring into existence on first write, as it does for backend/mem).  Every case works
under its own conformance/ prefix and cleans up after itself.
*/
package testsuite
