package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/options/delete"
)

const hierarchyListing = `<?xml version="1.0" encoding="utf-8"?>
<EnumerationResults ServiceEndpoint="http://127.0.0.1/" ContainerName="data">
  <Prefix>2024/</Prefix>
  <Delimiter>/</Delimiter>
  <Blobs>
    <Blob>
      <Name>2024/jan.csv</Name>
      <Properties>
        <Last-Modified>Tue, 02 Jan 2024 03:04:05 GMT</Last-Modified>
        <Content-Length>11</Content-Length>
      </Properties>
    </Blob>
    <BlobPrefix>
      <Name>2024/q1/</Name>
    </BlobPrefix>
  </Blobs>
  <NextMarker />
</EnumerationResults>`

const emptyListing = `<?xml version="1.0" encoding="utf-8"?>
<EnumerationResults ServiceEndpoint="http://127.0.0.1/" ContainerName="data">
  <Blobs />
  <NextMarker />
</EnumerationResults>`

type blobSuite struct {
	suite.Suite
	ctx      context.Context
	requests []*http.Request
}

func (s *blobSuite) SetupTest() {
	s.ctx = context.Background()
	s.requests = nil
}

// client returns a Client talking to a test server driven by handler.
func (s *blobSuite) client(handler http.HandlerFunc) *Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests = append(s.requests, r)
		handler(w, r)
	}))
	s.T().Cleanup(server.Close)

	c, err := azblob.NewClientWithNoCredential(server.URL+"/", nil)
	s.Require().NoError(err)
	return NewWithClient(c, nil)
}

func (s *blobSuite) TestList() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("list", r.URL.Query().Get("comp"))
		s.Equal("2024/", r.URL.Query().Get("prefix"))
		s.Equal("/", r.URL.Query().Get("delimiter"))
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(hierarchyListing))
	})

	entries, err := c.List(s.ctx, "data", "2024/", false)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	s.Equal(azfs.ListingEntry{Name: "q1", FullPath: "2024/q1/", IsDirectory: true}, entries[0])
	s.Equal("jan.csv", entries[1].Name)
	s.Equal("2024/jan.csv", entries[1].FullPath)
	s.False(entries[1].IsDirectory)
	s.Require().NotNil(entries[1].Size)
	s.Equal(int64(11), *entries[1].Size)
	s.NotNil(entries[1].LastModified)
}

func (s *blobSuite) TestListMissingContainer() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ms-error-code", "ContainerNotFound")
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.List(s.ctx, "data", "", false)
	s.Require().ErrorIs(err, azfs.ErrNotFound)
}

func (s *blobSuite) TestRead() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/data/a.csv", r.URL.Path)
		_, _ = w.Write([]byte("Hello world!"))
	})

	rc, err := c.Read(s.ctx, "data", "a.csv")
	s.Require().NoError(err)
	defer func() { _ = rc.Close() }()
	content, err := io.ReadAll(rc)
	s.Require().NoError(err)
	s.Equal("Hello world!", string(content))
}

func (s *blobSuite) TestWrite() {
	var body string
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPut, r.Method)
		s.Equal("BlockBlob", r.Header.Get("x-ms-blob-type"))
		s.Equal("application/json", r.Header.Get("x-ms-blob-content-type"))
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusCreated)
	})

	s.Require().NoError(c.Write(s.ctx, "data", "out/a.json", []byte(`{"a":1}`)))
	s.Equal(`{"a":1}`, body)
}

func (s *blobSuite) TestDelete() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusAccepted)
	})

	s.Require().NoError(c.Delete(s.ctx, "data", "a.csv"))
	s.Empty(s.requests[0].Header.Get("x-ms-delete-snapshots"))

	s.Require().NoError(c.Delete(s.ctx, "data", "a.csv", delete.WithIncludeSnapshots()))
	s.Equal("include", s.requests[1].Header.Get("x-ms-delete-snapshots"))
}

func (s *blobSuite) TestDeleteMissing() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ms-error-code", "BlobNotFound")
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Delete(s.ctx, "data", "a.csv")
	s.Require().ErrorIs(err, azfs.ErrNotFound)
	var pe *azfs.PathError
	s.Require().ErrorAs(err, &pe)
	s.Equal("delete", pe.Op)
	s.Equal("data/a.csv", pe.Path)
}

func (s *blobSuite) TestProperties() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodHead, r.Method)
		w.Header().Set("Content-Length", "11")
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("ETag", `"0x8DC0"`)
		w.Header().Set("Last-Modified", "Tue, 02 Jan 2024 03:04:05 GMT")
		w.Header().Set("x-ms-creation-time", "Mon, 01 Jan 2024 00:00:00 GMT")
		w.Header().Set("x-ms-meta-owner", "etl")
		w.WriteHeader(http.StatusOK)
	})

	info, err := c.Properties(s.ctx, "data", "2024/jan.csv")
	s.Require().NoError(err)
	s.Equal("jan.csv", info.Name)
	s.Equal("2024/jan.csv", info.Path)
	s.Equal(int64(11), info.Size)
	s.Equal("text/csv", info.ContentType)
	s.Equal(`"0x8DC0"`, info.ETag)
	s.Equal(azfs.InfoTypeFile, info.Type)
	s.NotNil(info.LastModified)
	s.NotNil(info.CreationTime)
	s.Equal("etl", info.Metadata["owner"])
}

func (s *blobSuite) TestPropertiesVirtualDirectory() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("x-ms-error-code", "BlobNotFound")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(strings.Replace(hierarchyListing, "<Prefix>2024/</Prefix>", "", 1)))
	})

	info, err := c.Properties(s.ctx, "data", "2024")
	s.Require().NoError(err)
	s.Equal(azfs.InfoTypeDirectory, info.Type)
}

func (s *blobSuite) TestPropertiesMissing() {
	c := s.client(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("x-ms-error-code", "BlobNotFound")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(emptyListing))
	})

	_, err := c.Properties(s.ctx, "data", "nope.csv")
	s.Require().ErrorIs(err, azfs.ErrNotFound)
}

func (s *blobSuite) TestNew() {
	b, err := New(backend.Config{
		Endpoint:   backend.Endpoint{Kind: azfs.KindBlob, Account: "testaccount", EndpointSuffix: "core.windows.net"},
		Credential: azfs.Credential{AccountKey: "dGVzdGtleQ=="}, // "testkey" base64 encoded
	})
	s.Require().NoError(err)
	s.IsType((*Client)(nil), b)

	_, err = New(backend.Config{
		Endpoint:   backend.Endpoint{Kind: azfs.KindBlob, Account: "testaccount", EndpointSuffix: "core.windows.net"},
		Credential: azfs.Credential{AccountKey: "not base64!"},
	})
	s.Require().ErrorIs(err, azfs.ErrAuthentication)

	b, err = New(backend.Config{Credential: azfs.Credential{
		ConnectionString: "DefaultEndpointsProtocol=https;AccountName=testaccount;AccountKey=dGVzdGtleQ==;EndpointSuffix=core.windows.net",
	}})
	s.Require().NoError(err)
	s.NotNil(b)

	s.NotNil(backend.Lookup(azfs.KindBlob), "package init registers the factory")
}

func TestBlob(t *testing.T) {
	suite.Run(t, new(blobSuite))
}
