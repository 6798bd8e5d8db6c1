package utils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/azfs/utils"
)

/**********************************
 ************TESTS*****************
 **********************************/

type errorsSuite struct {
	suite.Suite
}

// TestErrorWrapFunctions tests all error wrap functions with both nil and non-nil errors
func (s *errorsSuite) TestErrorWrapFunctions() {
	testError := errors.New("test error")

	testCases := []struct {
		name        string
		wrapFunc    func(error) error
		expectedMsg string
	}{
		{"WrapReadError", utils.WrapReadError, "read error: test error"},
		{"WrapWriteError", utils.WrapWriteError, "write error: test error"},
		{"WrapCloseError", utils.WrapCloseError, "close error: test error"},
		{"WrapGetError", utils.WrapGetError, "get error: test error"},
		{"WrapPutError", utils.WrapPutError, "put error: test error"},
		{"WrapListError", utils.WrapListError, "list error: test error"},
		{"WrapGlobError", utils.WrapGlobError, "glob error: test error"},
		{"WrapDeleteError", utils.WrapDeleteError, "delete error: test error"},
		{"WrapInfoError", utils.WrapInfoError, "info error: test error"},
		{"WrapExistsError", utils.WrapExistsError, "exists error: test error"},
		{"WrapCopyError", utils.WrapCopyError, "copy error: test error"},
		{"WrapDecodeError", utils.WrapDecodeError, "decode error: test error"},
		{"WrapEncodeError", utils.WrapEncodeError, "encode error: test error"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.wrapFunc(testError)
			s.Require().EqualError(err, tc.expectedMsg, "error message should be properly wrapped")
			s.Require().ErrorIs(err, testError, "should be able to unwrap to original error")
		})

		s.Run(tc.name+"_WithNil", func() {
			s.Require().NoError(tc.wrapFunc(nil), "should return nil when given a nil error")
		})
	}
}

func TestErrors(t *testing.T) {
	suite.Run(t, new(errorsSuite))
}
