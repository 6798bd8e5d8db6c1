/*
Package delete consists of custom delete options

Currently, we have IncludeSnapshots option that removes a blob together with its snapshots.  Azure refuses to delete
a blob that still has snapshots unless this option is passed.

Usage

	import(
		"github.com/c2fo/azfs/options/delete"
	)

	func DeleteBlob(ctx context.Context, c *azfile.Client) error {
		_, err := c.Rm(ctx, "https://acct.blob.core.windows.net/data/old.csv", delete.WithIncludeSnapshots())
		return err
	}
*/
package delete
