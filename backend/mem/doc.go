/*
Package mem provides an in-memory azfs.Backend.

It is intended for unit tests and local development.  Pin it for a storage kind through azfile.WithBackend:

	fs := mem.NewFileSystem(mem.WithHierarchical())
	client, err := azfile.NewClient(azfile.WithBackend(azfs.KindDataLake, fs))
*/
package mem
