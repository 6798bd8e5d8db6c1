// Package azfile is the URL-addressed facade over the azfs backends.
//
// Every operation takes a storage URL, decodes it with azpath, resolves the backend of its storage kind through a
// backend.Registry and calls it:
//
//	import (
//		"github.com/c2fo/azfs/azfile"
//		_ "github.com/c2fo/azfs/backend/all"
//	)
//
//	c, err := azfile.NewClient()
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	names, err := c.Ls(ctx, "https://acct.blob.core.windows.net/container")
//	csvs, err := c.Glob(ctx, "https://acct.blob.core.windows.net/container/*/*.csv")
//	f, err := c.ReadCSV(ctx, "abfss://lake@acct.dfs.core.windows.net/2024/jan.csv.gz")
//
// Blob and Data Lake URLs address files.  A queue URL addresses a queue: Put enqueues, Get receives and deletes one
// message, Ls peeks, Rm deletes the queue.  Table Storage URLs fail with azfs.ErrUnsupportedOperation; use the
// tablestorage package.
//
// # Credentials
//
// Without options the client reads AZFS_* environment variables (see NewOptions) and falls back to
// azidentity.DefaultAzureCredential.  WithCredential sets an explicit azfs.Credential.  Backend handles are cached per
// storage kind, account and credential fingerprint.
//
// # Testing
//
// WithBackend replaces the SDK backend of a storage kind, ie: with backend/mem or mocks.Backend.
package azfile
