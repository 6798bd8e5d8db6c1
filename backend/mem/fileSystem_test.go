package mem

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/backend"
	"github.com/c2fo/azfs/backend/testsuite"
)

type memSuite struct {
	suite.Suite
	ctx context.Context
	fs  *FileSystem
}

func (s *memSuite) SetupTest() {
	s.ctx = context.Background()
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.fs = NewFileSystem(WithClock(func() time.Time { return clock }))
	for _, name := range []string{"a.csv", "2024/jan.csv", "2024/feb.csv", "2024/q1/part-0.csv"} {
		s.Require().NoError(s.fs.Write(s.ctx, "data", name, []byte(name)))
	}
}

func (s *memSuite) names(entries []azfs.ListingEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.FullPath
	}
	return out
}

func (s *memSuite) TestList() {
	entries, err := s.fs.List(s.ctx, "data", "", false)
	s.Require().NoError(err)
	s.Equal([]string{"2024/", "a.csv"}, s.names(entries))
	s.True(entries[0].IsDirectory)
	s.Equal("2024", entries[0].Name)
	s.Require().NotNil(entries[1].Size)
	s.Equal(int64(5), *entries[1].Size)

	entries, err = s.fs.List(s.ctx, "data", "2024/", false)
	s.Require().NoError(err)
	s.Equal([]string{"2024/feb.csv", "2024/jan.csv", "2024/q1/"}, s.names(entries))

	entries, err = s.fs.List(s.ctx, "data", "2024/", true)
	s.Require().NoError(err)
	s.Equal([]string{"2024/feb.csv", "2024/jan.csv", "2024/q1/part-0.csv"}, s.names(entries))

	entries, err = s.fs.List(s.ctx, "data", "missing/", false)
	s.Require().NoError(err)
	s.Empty(entries)

	_, err = s.fs.List(s.ctx, "nope", "", false)
	s.ErrorIs(err, azfs.ErrNotFound)
}

func (s *memSuite) TestReadWrite() {
	r, err := s.fs.Read(s.ctx, "data", "2024/jan.csv")
	s.Require().NoError(err)
	b, err := io.ReadAll(r)
	s.Require().NoError(err)
	s.Equal("2024/jan.csv", string(b))
	s.Require().NoError(r.Close())

	_, err = s.fs.Read(s.ctx, "data", "missing")
	s.Require().ErrorIs(err, azfs.ErrNotFound)

	s.Require().ErrorIs(s.fs.Write(s.ctx, "data", "dir/", nil), azfs.ErrInvalidArgument)
	s.Equal([]string{"data"}, s.fs.Containers())
}

func (s *memSuite) TestPropertiesAndDelete() {
	info, err := s.fs.Properties(s.ctx, "data", "a.csv")
	s.Require().NoError(err)
	s.Equal("a.csv", info.Name)
	s.Equal(int64(5), info.Size)
	s.Equal(azfs.InfoTypeFile, info.Type)
	s.NotEmpty(info.ETag)

	_, err = s.fs.Properties(s.ctx, "data", "2024")
	s.Require().ErrorIs(err, azfs.ErrNotFound, "blob directories are virtual")

	s.Require().NoError(s.fs.Delete(s.ctx, "data", "a.csv"))
	s.Require().ErrorIs(s.fs.Delete(s.ctx, "data", "a.csv"), azfs.ErrNotFound)
	s.Require().ErrorIs(s.fs.Delete(s.ctx, "data", "2024"), azfs.ErrNotFound)
}

func (s *memSuite) TestHierarchical() {
	fs := NewFileSystem(WithHierarchical())
	s.Require().NoError(fs.Write(s.ctx, "lake", "raw/x.json", []byte("{}")))

	info, err := fs.Properties(s.ctx, "lake", "raw")
	s.Require().NoError(err)
	s.Equal(azfs.InfoTypeDirectory, info.Type)
	s.Equal("true", info.Metadata["hdi_isfolder"])

	s.Require().NoError(fs.Delete(s.ctx, "lake", "raw"))
	_, err = fs.Properties(s.ctx, "lake", "raw/x.json")
	s.Require().ErrorIs(err, azfs.ErrNotFound)
}

func (s *memSuite) TestFactory() {
	b, err := Factory(s.fs)(backend.Config{})
	s.Require().NoError(err)
	s.Same(s.fs, b)
}

func TestMem(t *testing.T) {
	suite.Run(t, new(memSuite))
}

func TestConformance(t *testing.T) {
	testsuite.RunBackendTests(t, NewFileSystem(), "data")
}

func TestConformanceHierarchical(t *testing.T) {
	testsuite.RunBackendTests(t, NewFileSystem(WithHierarchical()), "data")
}
