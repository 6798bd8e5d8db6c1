/*
Package azfs provides one client over the Azure storage services that share a storage account: Blob Storage, Data
Lake Storage Gen2, Queue Storage and Table Storage.

Every object is addressed by a URL.  The storage kind is taken from the endpoint host label, so

	https://myaccount.blob.core.windows.net/container/dir/file.csv
	https://myaccount.dfs.core.windows.net/filesystem/dir/file.csv
	wasbs://container@myaccount.blob.core.windows.net/dir/file.csv
	abfss://filesystem@myaccount.dfs.core.windows.net/dir/file.csv
	https://myaccount.queue.core.windows.net/myqueue

are all accepted.  Paths ending with a slash are directories; paths containing *, ? or [ are patterns.

Packages

  - azpath decodes storage URLs.
  - backend holds the registry of per-kind backend factories.  backend/blob, backend/datalake, backend/queue and
    backend/mem register themselves on import; backend/all imports every Azure backend.
  - azfile is the client: Ls, Glob, Get, Put, Info, Exists, Rm, Cp and the frame readers and writers, including
    concurrent batched reads.
  - tablestorage is the entity client for Azure Table Storage.
  - frame is the tabular value read from and written to csv, tsv and pickle files.
  - cmd/azfs is a command line front end.

Usage

	import (
		"github.com/c2fo/azfs/azfile"
		_ "github.com/c2fo/azfs/backend/all"
	)

	func main() {
		c, err := azfile.NewClient()
		if err != nil {
			panic(err)
		}
		defer c.Close()

		names, err := c.Glob(ctx, "https://myaccount.blob.core.windows.net/data/2024/*.csv")
		...
	}

Credentials

With no explicit option, NewClient reads AZFS_STORAGE_ACCOUNT, AZFS_STORAGE_ACCESS_KEY, AZFS_CONNECTION_STRING and the
AZFS_TENANT_ID, AZFS_CLIENT_ID, AZFS_CLIENT_SECRET service principal triple.  When none is set the ambient identity
(azidentity.DefaultAzureCredential) is used.

Errors

Failures wrap one of the Err* constants in this package, so callers can test them with errors.Is:

	if errors.Is(err, azfs.ErrNotFound) {
		...
	}
*/
package azfs
