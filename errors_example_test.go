package azfs_test

import (
	"errors"
	"fmt"

	"github.com/c2fo/azfs"
)

func ExamplePathError() {
	err := fmt.Errorf("loading report: %w",
		azfs.NewPathError("read", "reports/2024/jan.csv", azfs.ErrNotFound, errors.New("BlobNotFound")))

	// the kind and the underlying cause are both reachable
	fmt.Println(errors.Is(err, azfs.ErrNotFound), azfs.IsExist(err))

	var pathErr *azfs.PathError
	if errors.As(err, &pathErr) {
		fmt.Println(pathErr.Op, pathErr.Path)
	}
	fmt.Println(err)

	// Output:
	// true false
	// read reports/2024/jan.csv
	// loading report: read reports/2024/jan.csv: object does not exist: BlobNotFound
}
