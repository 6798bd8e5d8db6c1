/*
Package datalake implements azfs.Backend for Azure Data Lake Storage Gen2 (hierarchical namespace) using the
azdatalake SDK.

Importing the package registers it for azfs.KindDataLake:

	import _ "github.com/c2fo/azfs/backend/datalake"

Unlike Blob Storage, directories are real.  Properties reports them with Type "directory" (the service marks them
with the hdi_isfolder metadata key) and Delete removes non-empty directories recursively.
*/
package datalake
