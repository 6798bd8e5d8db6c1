/*
Package tablestorage is a schema-light entity wrapper over Azure Table Storage.

Entities are addressed by partition key and row key and carry scalar attributes:

	c, err := tablestorage.NewFromConnectionString(os.Getenv("AZFS_CONNECTION_STRING"), "Inventory")
	if err != nil {
		return err
	}
	if err := c.Put(ctx, "warehouse-1", "sku-42", map[string]any{"count": 7, "name": "bolt"}); err != nil {
		return err
	}
	e, err := c.Get(ctx, "warehouse-1", "sku-42")
	// e["count"] == int32(7), e.RowKey() == "sku-42"

Keys must be non-empty and may not contain '/', '\', '#' or '?'.  Integers that fit 32 bits are stored as Edm.Int32,
wider ones as Edm.Int64; time.Time is stored as Edm.DateTime and []byte as Edm.Binary.
*/
package tablestorage
