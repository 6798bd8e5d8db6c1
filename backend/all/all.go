// Package all imports all azfs backends.
package all

import (
	_ "github.com/c2fo/azfs/backend/blob"     // register blob backend
	_ "github.com/c2fo/azfs/backend/datalake" // register data lake backend
	_ "github.com/c2fo/azfs/backend/queue"    // register queue backend
)
