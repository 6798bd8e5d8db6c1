package backend

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/mocks"
)

/**********************************
 ************TESTS*****************
 **********************************/

type testSuite struct {
	suite.Suite
	built int
	mu    sync.Mutex
}

func (s *testSuite) SetupTest() {
	UnregisterAll()
	s.built = 0
}

func (s *testSuite) countingFactory(cfg Config) (azfs.Backend, error) {
	s.mu.Lock()
	s.built++
	s.mu.Unlock()
	return mocks.NewBackend(s.T()), nil
}

func (s *testSuite) TestRegister() {
	Register(azfs.KindBlob, s.countingFactory)
	Register(azfs.KindQueue, s.countingFactory)
	Register(azfs.KindDataLake, s.countingFactory)

	s.NotNil(Lookup(azfs.KindQueue))
	s.Nil(Lookup(azfs.KindTable))
	s.Equal([]azfs.Kind{azfs.KindBlob, azfs.KindDataLake, azfs.KindQueue}, RegisteredKinds())

	Unregister(azfs.KindQueue)
	s.Len(RegisteredKinds(), 2, "found 2 backends")

	UnregisterAll()
	s.Empty(RegisteredKinds(), "found 0 backends")
}

func (s *testSuite) TestGetOrCreateReusesHandle() {
	Register(azfs.KindBlob, s.countingFactory)
	r := NewRegistry(nil)
	ep := Endpoint{Kind: azfs.KindBlob, Account: "acct", EndpointSuffix: "core.windows.net"}

	b1, err := r.GetOrCreate(ep, azfs.Credential{AccountKey: "a2V5"})
	s.Require().NoError(err)
	b2, err := r.GetOrCreate(ep, azfs.Credential{AccountKey: "a2V5"})
	s.Require().NoError(err)
	s.Same(b1, b2)
	s.Equal(1, s.built)

	other, err := r.GetOrCreate(ep, azfs.Credential{AccountKey: "b3RoZXI="})
	s.Require().NoError(err)
	s.NotSame(b1, other, "a different credential never shares a handle")

	ambient, err := r.GetOrCreate(ep, azfs.Credential{})
	s.Require().NoError(err)
	s.NotSame(b1, ambient)

	otherAccount, err := r.GetOrCreate(Endpoint{Kind: azfs.KindBlob, Account: "acct2", EndpointSuffix: "core.windows.net"}, azfs.Credential{AccountKey: "a2V5"})
	s.Require().NoError(err)
	s.NotSame(b1, otherAccount)

	s.Equal(4, s.built)
	s.Equal(4, r.Len())

	r.Close()
	s.Equal(0, r.Len())
	b3, err := r.GetOrCreate(ep, azfs.Credential{AccountKey: "a2V5"})
	s.Require().NoError(err)
	s.NotSame(b1, b3)
}

func (s *testSuite) TestGetOrCreateConcurrent() {
	Register(azfs.KindBlob, s.countingFactory)
	r := NewRegistry(nil)
	ep := Endpoint{Kind: azfs.KindBlob, Account: "acct", EndpointSuffix: "core.windows.net"}

	var wg sync.WaitGroup
	handles := make([]azfs.Backend, 16)
	for i := range handles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := r.GetOrCreate(ep, azfs.Credential{})
			s.NoError(err)
			handles[i] = b
		}()
	}
	wg.Wait()

	s.Equal(1, s.built, "a key is built exactly once")
	for _, h := range handles {
		s.Same(handles[0], h)
	}
}

func (s *testSuite) TestGetOrCreateErrors() {
	r := NewRegistry(nil)
	ep := Endpoint{Kind: azfs.KindTable, Account: "acct", EndpointSuffix: "core.windows.net"}

	_, err := r.GetOrCreate(ep, azfs.Credential{})
	s.Require().ErrorIs(err, azfs.ErrUnsupportedOperation)

	_, err = r.GetOrCreate(ep, azfs.Credential{AccountKey: "x", ConnectionString: "y"})
	s.Require().ErrorIs(err, azfs.ErrInvalidArgument)

	Register(azfs.KindBlob, func(Config) (azfs.Backend, error) {
		return nil, fmt.Errorf("bad key: %w", azfs.ErrAuthentication)
	})
	_, err = r.GetOrCreate(Endpoint{Kind: azfs.KindBlob, Account: "acct", EndpointSuffix: "core.windows.net"}, azfs.Credential{AccountKey: "!"})
	s.Require().ErrorIs(err, azfs.ErrAuthentication)
	s.Equal(0, r.Len())
}

func (s *testSuite) TestOverrideAndServiceURL() {
	var seen Config
	Register(azfs.KindBlob, func(cfg Config) (azfs.Backend, error) {
		seen = cfg
		return mocks.NewBackend(s.T()), nil
	})
	r := NewRegistry(nil)
	ep := Endpoint{Kind: azfs.KindBlob, Account: "acct", EndpointSuffix: "core.windows.net"}

	pinned := mocks.NewBackend(s.T())
	r.Override(azfs.KindBlob, pinned)
	b, err := r.GetOrCreate(ep, azfs.Credential{})
	s.Require().NoError(err)
	s.Same(pinned, b)

	r.Override(azfs.KindBlob, nil)
	r.SetServiceURL(azfs.KindBlob, "http://127.0.0.1:10000/acct")
	_, err = r.GetOrCreate(ep, azfs.Credential{})
	s.Require().NoError(err)
	s.Equal("http://127.0.0.1:10000/acct", seen.URL())
	s.Equal("https://acct.blob.core.windows.net", seen.Endpoint.ServiceURL())
}

func (s *testSuite) TestMapError() {
	s.Require().NoError(MapError("get", "x", nil))

	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"404", &azcore.ResponseError{StatusCode: http.StatusNotFound}, azfs.ErrNotFound},
		{"not found code", &azcore.ResponseError{StatusCode: http.StatusBadRequest, ErrorCode: "QueueNotFound"}, azfs.ErrNotFound},
		{"403", &azcore.ResponseError{StatusCode: http.StatusForbidden, ErrorCode: "AuthorizationFailure"}, azfs.ErrAuthentication},
		{"401", &azcore.ResponseError{StatusCode: http.StatusUnauthorized}, azfs.ErrAuthentication},
		{"exists", &azcore.ResponseError{StatusCode: http.StatusConflict, ErrorCode: "BlobAlreadyExists"}, azfs.ErrFileExists},
		{"dns", &net.DNSError{Err: "no such host", Name: "acct.blob.core.windows.net", IsNotFound: true}, azfs.ErrConnectivity},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, azfs.ErrConnectivity},
		{"already classified", fmt.Errorf("x: %w", azfs.ErrNotFound), azfs.ErrNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := MapError("get", "https://acct.blob.core.windows.net/c/x", tt.err)
			s.Require().ErrorIs(err, tt.kind)
			s.Require().ErrorIs(err, tt.err, "the cause stays reachable")
			var pe *azfs.PathError
			s.Require().ErrorAs(err, &pe)
			s.Equal("get", pe.Op)
		})
	}

	var respErr *azcore.ResponseError
	s.Require().ErrorAs(MapError("get", "x", &azcore.ResponseError{StatusCode: 500}), &respErr)
	s.Nil(Classify(errors.New("plain")))

	wrapped := azfs.NewPathError("rm", "y", azfs.ErrNotFound, nil)
	s.Same(wrapped, MapError("get", "x", wrapped))
}

func TestBackend(t *testing.T) {
	suite.Run(t, new(testSuite))
}
