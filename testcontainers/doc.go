/*
Package testcontainers runs the Azurite storage emulator in Docker for integration tests.

The suites in this package are behind the azfsintegration build tag:

	go test -tags azfsintegration ./testcontainers/...

Azurite serves Blob, Queue and Table storage.  It has no Data Lake (dfs) endpoint, so the datalake backend is only
covered by its httptest suite.
*/
package testcontainers
