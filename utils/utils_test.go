package utils_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/azfs/utils"
)

/**********************************
 ************TESTS*****************
 **********************************/

type utilsSuite struct {
	suite.Suite
}

type slashTest struct {
	path     string
	expected string
	message  string
}

func (s *utilsSuite) TestEnsureTrailingSlash() {
	tests := []slashTest{
		{path: "some/path", expected: "some/path/", message: "no slash - adding one"},
		{path: "some/path/", expected: "some/path/", message: "slash found - don't add one"},
		{path: "", expected: "", message: "empty string is the container root - leave it"},
		{path: "file.txt", expected: "file.txt/", message: "no slash but looks like a file - add one anyway"},
	}

	for _, slashtest := range tests {
		s.Equal(slashtest.expected, utils.EnsureTrailingSlash(slashtest.path), slashtest.message)
	}
}

func (s *utilsSuite) TestRemoveSlashes() {
	s.Equal("a/b", utils.RemoveTrailingSlash("a/b/"))
	s.Equal("a/b", utils.RemoveTrailingSlash("a/b"))
	s.Equal("/", utils.RemoveTrailingSlash("/"))
	s.Equal("a/b", utils.RemoveLeadingSlash("/a/b"))
	s.Equal("a/b", utils.RemoveLeadingSlash("a/b"))
}

func (s *utilsSuite) TestCollapseSlashes() {
	tests := []slashTest{
		{path: "a//b///c", expected: "a/b/c", message: "runs collapse"},
		{path: "//a/", expected: "/a/", message: "leading run collapses"},
		{path: "a/b", expected: "a/b", message: "nothing to do"},
	}
	for _, slashtest := range tests {
		s.Equal(slashtest.expected, utils.CollapseSlashes(slashtest.path), slashtest.message)
	}
}

func (s *utilsSuite) TestBaseAndParent() {
	s.Equal("c.txt", utils.BaseName("a/b/c.txt"))
	s.Equal("b", utils.BaseName("a/b/"))
	s.Equal("", utils.BaseName(""))

	s.Equal("a/b/", utils.ParentPrefix("a/b/c.txt"))
	s.Equal("a/", utils.ParentPrefix("a/b/"))
	s.Equal("", utils.ParentPrefix("c.txt"))
}

type failingCloser struct {
	io.Reader
}

func (failingCloser) Close() error { return errors.New("boom") }

func (s *utilsSuite) TestReadAllAndClose() {
	data, err := utils.ReadAllAndClose(io.NopCloser(strings.NewReader("hello")))
	s.Require().NoError(err)
	s.Equal("hello", string(data))

	_, err = utils.ReadAllAndClose(failingCloser{strings.NewReader("x")})
	s.Require().EqualError(err, "close error: boom")
}

func (s *utilsSuite) TestPtrDeref() {
	p := utils.Ptr(int64(7))
	s.Equal(int64(7), utils.Deref(p))
	s.Equal("", utils.Deref[string](nil))
}

func TestUtils(t *testing.T) {
	suite.Run(t, new(utilsSuite))
}
