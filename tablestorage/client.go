package tablestorage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/grokify/mogo/log/slogutil"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azpath"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options"
	"github.com/c2fo/azfs/utils"
)

// Reserved entity property names.
const (
	PartitionKey = "PartitionKey"
	RowKey       = "RowKey"
	Timestamp    = "Timestamp"
)

// Entity is a table row: PartitionKey, RowKey and the scalar attributes.
type Entity map[string]any

// PartitionKey returns the partition key of the entity.
func (e Entity) PartitionKey() string { s, _ := e[PartitionKey].(string); return s }

// RowKey returns the row key of the entity.
func (e Entity) RowKey() string { s, _ := e[RowKey].(string); return s }

// Client reads and writes entities of one table.
type Client struct {
	table  Table
	name   string
	logger *slog.Logger
}

// New wraps table.  name is only used in logs and errors.
func New(table Table, name string, opts ...options.NewClientOption[Client]) *Client {
	c := &Client{table: table, name: name, logger: slogutil.Null()}
	options.ApplyOptions(c, opts...)
	return c
}

// NewFromConnectionString connects with a storage connection string.
func NewFromConnectionString(connStr, tableName string, opts ...options.NewClientOption[Client]) (*Client, error) {
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, nil)
	if err != nil {
		return nil, backend.AuthError(err)
	}
	return New(svc.NewClient(tableName), tableName, opts...), nil
}

// NewWithSharedKey connects to the public cloud endpoint of account with a shared account key.
func NewWithSharedKey(account, key, tableName string, opts ...options.NewClientOption[Client]) (*Client, error) {
	return NewFromURL(serviceURL(account)+"/"+tableName, azfs.Credential{AccountKey: key}, opts...)
}

// NewWithTokenCredential connects to the public cloud endpoint of account with a token credential.
func NewWithTokenCredential(account string, cred azcore.TokenCredential, tableName string, opts ...options.NewClientOption[Client]) (*Client, error) {
	return NewFromURL(serviceURL(account)+"/"+tableName, azfs.Credential{Token: cred}, opts...)
}

// NewFromURL connects to the table addressed by a table URL, ie: https://acct.table.core.windows.net/Inventory
func NewFromURL(rawURL string, cred azfs.Credential, opts ...options.NewClientOption[Client]) (*Client, error) {
	p, err := azpath.Decode(rawURL)
	if err != nil {
		return nil, err
	}
	if p.Kind != azfs.KindTable {
		return nil, fmt.Errorf("%s is a %s URL: %w", rawURL, p.Kind, azfs.ErrInvalidPath)
	}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	var svc *aztables.ServiceClient
	switch cred.Mode() {
	case azfs.CredentialConnectionString:
		svc, err = aztables.NewServiceClientFromConnectionString(cred.ConnectionString, nil)
	case azfs.CredentialSharedKey:
		var key *aztables.SharedKeyCredential
		key, err = aztables.NewSharedKeyCredential(p.Account, cred.AccountKey)
		if err != nil {
			return nil, backend.AuthError(err)
		}
		svc, err = aztables.NewServiceClientWithSharedKey(p.ServiceURL(), key, nil)
	default:
		tc, terr := backend.TokenCredential(cred)
		if terr != nil {
			return nil, terr
		}
		svc, err = aztables.NewServiceClient(p.ServiceURL(), tc, nil)
	}
	if err != nil {
		return nil, backend.AuthError(err)
	}
	return New(svc.NewClient(p.Container), p.Container, opts...), nil
}

func serviceURL(account string) string {
	return fmt.Sprintf("https://%s.%s.%s", account, azfs.KindTable, azpath.DefaultEndpointSuffix)
}

// CreateTable creates the table.  An existing table is not an error.
func (c *Client) CreateTable(ctx context.Context) error {
	_, err := c.table.CreateTable(ctx, nil)
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && (respErr.StatusCode == http.StatusConflict || respErr.ErrorCode == "TableAlreadyExists") {
		return nil
	}
	if err != nil {
		return backend.MapError("create table", c.name, err)
	}
	c.logger.Debug("table created", slog.String("table", c.name))
	return nil
}

// Put upserts the entity (pk, rk), merging attrs into any existing properties.  Every attribute must be a scalar:
// string, bool, an integer or float kind, time.Time or []byte.  Validation happens before any network call.
func (c *Client) Put(ctx context.Context, pk, rk string, attrs map[string]any) error {
	if err := validateKeys(pk, rk); err != nil {
		return err
	}
	// keys go out verbatim; the SDK escapes quotes only where they appear in the request URL
	entity := make(map[string]any, 2+2*len(attrs))
	entity[PartitionKey], entity[RowKey] = pk, rk
	for k, v := range attrs {
		if k == PartitionKey || k == RowKey || k == Timestamp || k == "" || strings.Contains(k, "@") {
			return fmt.Errorf("attribute name %q is reserved: %w", k, azfs.ErrInvalidArgument)
		}
		ev, edmType, err := toEDM(v)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", k, err)
		}
		entity[k] = ev
		if edmType != "" {
			entity[k+odataType] = edmType
		}
	}

	body, err := json.Marshal(entity)
	if err != nil {
		return utils.WrapEncodeError(err)
	}

	c.logger.Debug("upserting entity", slog.String("table", c.name), slog.String("pk", pk), slog.String("rk", rk))
	if _, err := c.table.UpsertEntity(ctx, body, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeMerge}); err != nil {
		return backend.MapError("put", c.entityPath(pk, rk), err)
	}
	return nil
}

// Get returns the entity (pk, rk).  A missing entity returns an error wrapping azfs.ErrNotFound.
func (c *Client) Get(ctx context.Context, pk, rk string) (Entity, error) {
	if err := validateKeys(pk, rk); err != nil {
		return nil, err
	}
	resp, err := c.table.GetEntity(ctx, pk, rk, nil)
	if err != nil {
		return nil, backend.MapError("get", c.entityPath(pk, rk), err)
	}
	return decodeEntity(resp.Value)
}

// List returns every entity of partition pk.
func (c *Client) List(ctx context.Context, pk string) ([]Entity, error) {
	if err := validateKey("partition key", pk); err != nil {
		return nil, err
	}
	filter := fmt.Sprintf("PartitionKey eq '%s'", strings.ReplaceAll(pk, "'", "''"))
	pager := c.table.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	entities := make([]Entity, 0)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, backend.MapError("list", c.name+"/"+pk, err)
		}
		for _, raw := range resp.Entities {
			e, err := decodeEntity(raw)
			if err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
	}
	return entities, nil
}

// Delete removes the entity (pk, rk).
func (c *Client) Delete(ctx context.Context, pk, rk string) error {
	if err := validateKeys(pk, rk); err != nil {
		return err
	}
	if _, err := c.table.DeleteEntity(ctx, pk, rk, nil); err != nil {
		return backend.MapError("delete", c.entityPath(pk, rk), err)
	}
	return nil
}

func (c *Client) entityPath(pk, rk string) string {
	return c.name + "/" + pk + "/" + rk
}

func validateKeys(pk, rk string) error {
	if err := validateKey("partition key", pk); err != nil {
		return err
	}
	return validateKey("row key", rk)
}

func validateKey(what, k string) error {
	if k == "" {
		return fmt.Errorf("%s is empty: %w", what, azfs.ErrInvalidArgument)
	}
	if strings.ContainsAny(k, `/\#?`) {
		return fmt.Errorf("%s %q contains a forbidden character: %w", what, k, azfs.ErrInvalidArgument)
	}
	return nil
}

// property type annotation suffix and the EDM names this package writes
const (
	odataType   = "@odata.type"
	edmInt64    = "Edm.Int64"
	edmDouble   = "Edm.Double"
	edmDateTime = "Edm.DateTime"
	edmBinary   = "Edm.Binary"
	edmGUID     = "Edm.Guid"
)

// toEDM converts a scalar to its wire value and EDM type annotation.  Strings, booleans and 32 bit integers need no
// annotation.
func toEDM(v any) (any, string, error) {
	switch t := v.(type) {
	case string, bool, int32:
		return t, "", nil
	case int8:
		return int32(t), "", nil
	case int16:
		return int32(t), "", nil
	case uint8:
		return int32(t), "", nil
	case uint16:
		return int32(t), "", nil
	case int:
		if t >= math.MinInt32 && t <= math.MaxInt32 {
			return int32(t), "", nil
		}
		return int64EDM(int64(t))
	case int64:
		return int64EDM(t)
	case uint32:
		return int64EDM(int64(t))
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, "", fmt.Errorf("%d overflows Edm.Int64: %w", t, azfs.ErrInvalidArgument)
		}
		return int64EDM(int64(t))
	case uint64:
		if t > math.MaxInt64 {
			return nil, "", fmt.Errorf("%d overflows Edm.Int64: %w", t, azfs.ErrInvalidArgument)
		}
		return int64EDM(int64(t))
	case float32:
		return doubleEDM(float64(t))
	case float64:
		return doubleEDM(t)
	case time.Time:
		// the SDK formats with a literal Z
		return aztables.EDMDateTime(t.UTC()), edmDateTime, nil
	case []byte:
		return aztables.EDMBinary(t), edmBinary, nil
	default:
		return nil, "", fmt.Errorf("unsupported attribute type %T: %w", v, azfs.ErrInvalidArgument)
	}
}

func int64EDM(v int64) (any, string, error) {
	return aztables.EDMInt64(v), edmInt64, nil
}

// doubleEDM always annotates, otherwise a whole number such as 2.0 is read back as Edm.Int32.
func doubleEDM(v float64) (any, string, error) {
	switch {
	case math.IsNaN(v):
		return "NaN", edmDouble, nil
	case math.IsInf(v, 1):
		return "Infinity", edmDouble, nil
	case math.IsInf(v, -1):
		return "-Infinity", edmDouble, nil
	}
	return v, edmDouble, nil
}

// decodeEntity unmarshals a service payload into an Entity with plain Go values.  Annotated properties decode to
// their EDM type; unannotated numbers are int32 when they are whole and fit, float64 otherwise.
func decodeEntity(raw []byte) (Entity, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, utils.WrapDecodeError(err)
	}
	e := make(Entity, len(fields))
	for k, v := range fields {
		if strings.HasPrefix(k, "odata.") || strings.HasSuffix(k, odataType) {
			continue
		}
		var edmType string
		if t, ok := fields[k+odataType]; ok {
			if err := json.Unmarshal(t, &edmType); err != nil {
				return nil, utils.WrapDecodeError(err)
			}
		}
		if k == Timestamp && edmType == "" {
			edmType = edmDateTime
		}
		val, err := decodeProperty(v, edmType)
		if err != nil {
			return nil, utils.WrapDecodeError(fmt.Errorf("property %q: %w", k, err))
		}
		e[k] = val
	}
	return e, nil
}

func decodeProperty(raw json.RawMessage, edmType string) (any, error) {
	switch edmType {
	case edmInt64:
		var v aztables.EDMInt64
		err := json.Unmarshal(raw, &v)
		return int64(v), err
	case edmDateTime:
		var v aztables.EDMDateTime
		err := json.Unmarshal(raw, &v)
		return time.Time(v), err
	case edmBinary:
		var v aztables.EDMBinary
		err := json.Unmarshal(raw, &v)
		return []byte(v), err
	case edmGUID:
		var v aztables.EDMGUID
		err := json.Unmarshal(raw, &v)
		return string(v), err
	case edmDouble:
		var special string
		if json.Unmarshal(raw, &special) == nil {
			return strconv.ParseFloat(special, 64)
		}
		var v float64
		err := json.Unmarshal(raw, &v)
		return v, err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	if _, isNumber := v.(float64); isNumber {
		if i, err := strconv.ParseInt(string(raw), 10, 32); err == nil {
			return int32(i), nil
		}
	}
	return v, nil
}
