package backend

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/c2fo/azfs"
)

// MapError classifies an SDK error into one of the azfs error kinds and records op and path.  The original error
// stays reachable through errors.As.
func MapError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var pe *azfs.PathError
	if errors.As(err, &pe) {
		return err
	}

	return azfs.NewPathError(op, path, Classify(err), err)
}

// Classify returns the azfs error kind matching err, or nil when err fits none of them.
func Classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	for _, kind := range []error{
		azfs.ErrNotFound, azfs.ErrFileExists, azfs.ErrAuthentication, azfs.ErrConnectivity,
		azfs.ErrInvalidPath, azfs.ErrInvalidArgument, azfs.ErrUnsupportedOperation,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch {
		case respErr.StatusCode == http.StatusNotFound, strings.HasSuffix(respErr.ErrorCode, "NotFound"):
			return azfs.ErrNotFound
		case respErr.StatusCode == http.StatusUnauthorized, respErr.StatusCode == http.StatusForbidden:
			return azfs.ErrAuthentication
		case strings.HasSuffix(respErr.ErrorCode, "AlreadyExists"):
			return azfs.ErrFileExists
		}
		return nil
	}

	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return azfs.ErrAuthentication
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return azfs.ErrConnectivity
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return azfs.ErrConnectivity
	}

	return nil
}
