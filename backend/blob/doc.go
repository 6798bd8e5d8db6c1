/*
Package blob implements azfs.Backend for Azure Blob Storage using the azblob SDK.

Importing the package registers it for azfs.KindBlob:

	import _ "github.com/c2fo/azfs/backend/blob"

Authentication follows the azfs.Credential given to the registry: connection string, shared account key, an explicit
token credential, or the ambient identity resolved by azidentity.DefaultAzureCredential.

Directories are virtual.  A non-recursive listing returns sub-directories as entries with a trailing slash, and
Properties reports a missing blob that prefixes other blobs as a directory.
*/
package blob
