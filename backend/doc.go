/*
Package backend lets storage-kind backends self-register on load via an init() call to

	backend.Register(azfs.KindBlob, factory)

A caller loads only the backends it needs, usually all of them:

	import (
		"github.com/c2fo/azfs/azfile"
		_ "github.com/c2fo/azfs/backend/all"
	)

A Registry caches one constructed backend per (kind, account, endpoint, credential) key, so repeated calls against
the same storage account reuse the same SDK client.  Overrides pin a backend for a kind regardless of the URL, which
is how tests substitute backend/mem or a mockery mock.

MapError translates azcore.ResponseError status codes and transport failures into the azfs error kinds.
*/
package backend
