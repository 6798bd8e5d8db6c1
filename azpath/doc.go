/*
Package azpath decodes Azure storage URLs into a StoragePath.

Recognized shapes:

	https://{account}.{blob|dfs|queue|table}.{suffix}/{container}/{blob_path}
	wasb[s]://{container}@{account}.blob.{suffix}/{blob_path}
	abfs[s]://{container}@{account}.dfs.{suffix}/{blob_path}

The suffix is one of the public, China, US Government or Germany cloud suffixes.  Queue and table URLs take exactly
one path segment.  A trailing slash marks a directory.
*/
package azpath
