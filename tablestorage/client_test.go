package tablestorage

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/azfs"
)

// memTable is an in-memory Table that stores request payloads verbatim and merges upserts the way the service does.
type memTable struct {
	rows    map[string]map[string]json.RawMessage
	calls   int
	created bool
	filters []string
}

func newMemTable() *memTable {
	return &memTable{rows: map[string]map[string]json.RawMessage{}}
}

func notFound() error {
	return &azcore.ResponseError{StatusCode: http.StatusNotFound, ErrorCode: "ResourceNotFound"}
}

func rowKey(pk, rk string) string { return pk + "|" + rk }

func (m *memTable) UpsertEntity(_ context.Context, entity []byte, _ *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error) {
	m.calls++
	var in map[string]json.RawMessage
	if err := json.Unmarshal(entity, &in); err != nil {
		return aztables.UpsertEntityResponse{}, err
	}
	var pk, rk string
	if err := json.Unmarshal(in["PartitionKey"], &pk); err != nil {
		return aztables.UpsertEntityResponse{}, err
	}
	if err := json.Unmarshal(in["RowKey"], &rk); err != nil {
		return aztables.UpsertEntityResponse{}, err
	}
	cur, ok := m.rows[rowKey(pk, rk)]
	if !ok {
		cur = map[string]json.RawMessage{}
		m.rows[rowKey(pk, rk)] = cur
	}
	for k, v := range in {
		cur[k] = v
	}
	return aztables.UpsertEntityResponse{}, nil
}

func (m *memTable) GetEntity(_ context.Context, pk, rk string, _ *aztables.GetEntityOptions) (aztables.GetEntityResponse, error) {
	m.calls++
	e, ok := m.rows[rowKey(pk, rk)]
	if !ok {
		return aztables.GetEntityResponse{}, notFound()
	}
	body, err := json.Marshal(e)
	return aztables.GetEntityResponse{Value: body}, err
}

func (m *memTable) NewListEntitiesPager(opts *aztables.ListEntitiesOptions) *runtime.Pager[aztables.ListEntitiesResponse] {
	m.calls++
	pk := ""
	if opts != nil && opts.Filter != nil {
		m.filters = append(m.filters, *opts.Filter)
		pk = strings.TrimSuffix(strings.TrimPrefix(*opts.Filter, "PartitionKey eq '"), "'")
		pk = strings.ReplaceAll(pk, "''", "'")
	}
	keys := make([]string, 0, len(m.rows))
	for k := range m.rows {
		if strings.HasPrefix(k, pk+"|") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	// one entity per page to exercise paging
	page := 0
	return runtime.NewPager(runtime.PagingHandler[aztables.ListEntitiesResponse]{
		More: func(aztables.ListEntitiesResponse) bool {
			return page < len(keys)
		},
		Fetcher: func(context.Context, *aztables.ListEntitiesResponse) (aztables.ListEntitiesResponse, error) {
			if len(keys) == 0 {
				return aztables.ListEntitiesResponse{}, nil
			}
			body, err := json.Marshal(m.rows[keys[page]])
			page++
			return aztables.ListEntitiesResponse{Entities: [][]byte{body}}, err
		},
	})
}

func (m *memTable) DeleteEntity(_ context.Context, pk, rk string, _ *aztables.DeleteEntityOptions) (aztables.DeleteEntityResponse, error) {
	m.calls++
	if _, ok := m.rows[rowKey(pk, rk)]; !ok {
		return aztables.DeleteEntityResponse{}, notFound()
	}
	delete(m.rows, rowKey(pk, rk))
	return aztables.DeleteEntityResponse{}, nil
}

func (m *memTable) CreateTable(context.Context, *aztables.CreateTableOptions) (aztables.CreateTableResponse, error) {
	m.calls++
	if m.created {
		return aztables.CreateTableResponse{}, &azcore.ResponseError{StatusCode: http.StatusConflict, ErrorCode: "TableAlreadyExists"}
	}
	m.created = true
	return aztables.CreateTableResponse{}, nil
}

type clientSuite struct {
	suite.Suite
	ctx   context.Context
	table *memTable
	c     *Client
}

func (s *clientSuite) SetupTest() {
	s.ctx = context.Background()
	s.table = newMemTable()
	s.c = New(s.table, "Inventory")
}

func (s *clientSuite) TestPutGet() {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	s.Require().NoError(s.c.Put(s.ctx, "warehouse-1", "sku-42", map[string]any{
		"name":    "bolt",
		"count":   7,
		"serial":  int64(1) << 40,
		"active":  true,
		"weight":  float32(1.5),
		"arrived": when,
		"blob":    []byte{1, 2, 3},
	}))

	e, err := s.c.Get(s.ctx, "warehouse-1", "sku-42")
	s.Require().NoError(err)
	s.Equal("warehouse-1", e.PartitionKey())
	s.Equal("sku-42", e.RowKey())
	s.Equal("bolt", e["name"])
	s.EqualValues(7, e["count"])
	s.Equal(int64(1)<<40, e["serial"])
	s.Equal(true, e["active"])
	s.EqualValues(1.5, e["weight"])
	s.Equal([]byte{1, 2, 3}, e["blob"])
	arrived, ok := e["arrived"].(time.Time)
	s.Require().True(ok, "arrived should decode as time.Time")
	s.True(when.Equal(arrived))
}

func (s *clientSuite) TestPutMerges() {
	s.Require().NoError(s.c.Put(s.ctx, "p", "r", map[string]any{"a": "1", "b": "2"}))
	s.Require().NoError(s.c.Put(s.ctx, "p", "r", map[string]any{"b": "3"}))

	e, err := s.c.Get(s.ctx, "p", "r")
	s.Require().NoError(err)
	s.Equal("1", e["a"])
	s.Equal("3", e["b"])
}

func (s *clientSuite) TestValidationBeforeNetwork() {
	tests := []struct {
		name  string
		pk    string
		rk    string
		attrs map[string]any
	}{
		{name: "empty partition key", pk: "", rk: "r"},
		{name: "empty row key", pk: "p", rk: ""},
		{name: "slash in key", pk: "a/b", rk: "r"},
		{name: "hash in key", pk: "p", rk: "r#1"},
		{name: "question mark in key", pk: "p?", rk: "r"},
		{name: "backslash in key", pk: `p\`, rk: "r"},
		{name: "reserved attribute", pk: "p", rk: "r", attrs: map[string]any{"RowKey": "x"}},
		{name: "nested attribute", pk: "p", rk: "r", attrs: map[string]any{"tags": []string{"a"}}},
		{name: "map attribute", pk: "p", rk: "r", attrs: map[string]any{"m": map[string]any{}}},
		{name: "nil attribute", pk: "p", rk: "r", attrs: map[string]any{"n": nil}},
		{name: "overflowing unsigned", pk: "p", rk: "r", attrs: map[string]any{"u": uint64(1) << 63}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := s.c.Put(s.ctx, tt.pk, tt.rk, tt.attrs)
			s.ErrorIs(err, azfs.ErrInvalidArgument)
		})
	}
	_, err := s.c.Get(s.ctx, "", "r")
	s.ErrorIs(err, azfs.ErrInvalidArgument)
	s.ErrorIs(s.c.Delete(s.ctx, "p", ""), azfs.ErrInvalidArgument)
	_, err = s.c.List(s.ctx, "")
	s.ErrorIs(err, azfs.ErrInvalidArgument)

	s.Zero(s.table.calls, "no request may be sent for invalid input")
}

func (s *clientSuite) TestGetMissing() {
	_, err := s.c.Get(s.ctx, "p", "nope")
	s.ErrorIs(err, azfs.ErrNotFound)
	s.Contains(err.Error(), "Inventory/p/nope")
}

func (s *clientSuite) TestList() {
	s.Require().NoError(s.c.Put(s.ctx, "p", "r2", map[string]any{"v": "b"}))
	s.Require().NoError(s.c.Put(s.ctx, "p", "r1", map[string]any{"v": "a"}))
	s.Require().NoError(s.c.Put(s.ctx, "other", "r1", map[string]any{"v": "z"}))

	got, err := s.c.List(s.ctx, "p")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("r1", got[0].RowKey())
	s.Equal("r2", got[1].RowKey())

	none, err := s.c.List(s.ctx, "empty")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *clientSuite) TestQuotedKeys() {
	s.Require().NoError(s.c.Put(s.ctx, "o'brien", "it's", map[string]any{"v": "q"}))
	s.Contains(s.table.rows, "o'brien|it's", "keys are stored verbatim")

	e, err := s.c.Get(s.ctx, "o'brien", "it's")
	s.Require().NoError(err)
	s.Equal("o'brien", e.PartitionKey())
	s.Equal("it's", e.RowKey())
	s.Equal("q", e["v"])

	got, err := s.c.List(s.ctx, "o'brien")
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("it's", got[0].RowKey())
	s.Equal([]string{"PartitionKey eq 'o''brien'"}, s.table.filters)
}

func (s *clientSuite) TestDoublesKeepTheirType() {
	s.Require().NoError(s.c.Put(s.ctx, "p", "r", map[string]any{
		"price": float64(2.0),
		"ratio": 0.5,
		"nan":   math.NaN(),
		"inf":   math.Inf(-1),
		"count": 2,
	}))
	s.JSONEq(`"Edm.Double"`, string(s.table.rows["p|r"]["price@odata.type"]))
	s.NotContains(s.table.rows["p|r"], "count@odata.type")

	e, err := s.c.Get(s.ctx, "p", "r")
	s.Require().NoError(err)
	s.Equal(float64(2), e["price"])
	s.Equal(0.5, e["ratio"])
	s.True(math.IsNaN(e["nan"].(float64)))
	s.Equal(math.Inf(-1), e["inf"])
	s.Equal(int32(2), e["count"])
}

func (s *clientSuite) TestDecodeServicePayload() {
	e, err := decodeEntity([]byte(`{
		"odata.etag": "W/\"datetime'2024-03-01T12%3A00%3A00Z'\"",
		"PartitionKey": "p",
		"RowKey": "r",
		"Timestamp": "2024-03-01T12:00:00.0000000Z",
		"big": "1099511627776", "big@odata.type": "Edm.Int64",
		"id": "7e9d8c1b-0000-0000-0000-000000000000", "id@odata.type": "Edm.Guid",
		"small": 3,
		"fraction": 2.25
	}`))
	s.Require().NoError(err)
	s.Equal("p", e.PartitionKey())
	s.Equal(int64(1)<<40, e["big"])
	s.Equal("7e9d8c1b-0000-0000-0000-000000000000", e["id"])
	s.Equal(int32(3), e["small"])
	s.Equal(2.25, e["fraction"])
	ts, ok := e[Timestamp].(time.Time)
	s.Require().True(ok)
	s.True(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Equal(ts))
	s.NotContains(e, "odata.etag")
}

func (s *clientSuite) TestDelete() {
	s.Require().NoError(s.c.Put(s.ctx, "p", "r", nil))
	s.Require().NoError(s.c.Delete(s.ctx, "p", "r"))

	_, err := s.c.Get(s.ctx, "p", "r")
	s.ErrorIs(err, azfs.ErrNotFound)
	s.ErrorIs(s.c.Delete(s.ctx, "p", "r"), azfs.ErrNotFound)
}

func (s *clientSuite) TestCreateTableIdempotent() {
	s.NoError(s.c.CreateTable(s.ctx))
	s.NoError(s.c.CreateTable(s.ctx))
	s.True(s.table.created)
}

func (s *clientSuite) TestNewFromURLRejectsOtherKinds() {
	_, err := NewFromURL("https://acct.blob.core.windows.net/data/x", azfs.Credential{AccountKey: "a2V5"})
	s.ErrorIs(err, azfs.ErrInvalidPath)

	_, err = NewFromURL("https://acct.table.core.windows.net/Inventory", azfs.Credential{AccountKey: "a2V5", ConnectionString: "x"})
	s.ErrorIs(err, azfs.ErrInvalidArgument)
}

func (s *clientSuite) TestNewWithSharedKey() {
	c, err := NewWithSharedKey("acct", "a2V5", "Inventory")
	s.Require().NoError(err)
	s.Equal("Inventory", c.name)
}

func TestClient(t *testing.T) {
	suite.Run(t, new(clientSuite))
}
