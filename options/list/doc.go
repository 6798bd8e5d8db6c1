/*
Package list consists of options for listing operations (Ls, Glob).

	names, err := client.Ls(ctx, "https://acct.blob.core.windows.net/data/2024/", list.WithAttachPrefix())
	// names[0] == "https://acct.blob.core.windows.net/data/2024/jan.csv"
*/
package list
