package testsuite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/utils"
)

// BackendTestCase defines a single backend test scenario
type BackendTestCase struct {
	Description       string
	Sequence          string
	FileAlreadyExists bool
	ExpectNotFound    bool
	ExpectedResults   string
}

// DefaultBackendTestCases returns the standard set of backend test cases.
//
// Sequence commands, separated by semicolons:
//
//	R()    read the object
//	W(x)   write x, replacing the object
//	D()    delete the object
//	P(n)   probe properties and require the size to be n
//	L(n)   list the case prefix and require n entries naming the object
func DefaultBackendTestCases() []BackendTestCase {
	return []BackendTestCase{
		// Read
		{
			Description:       "Read, file exists",
			Sequence:          "R()",
			FileAlreadyExists: true,
			ExpectedResults:   "some text",
		},
		{
			Description:     "Read, file does not exist",
			Sequence:        "R()",
			ExpectNotFound:  true,
			ExpectedResults: "",
		},

		// Write
		{
			Description:     "Write, file does not exist",
			Sequence:        "W(abc)",
			ExpectedResults: "abc",
		},
		{
			Description:       "Write, file exists",
			Sequence:          "W(abc)",
			FileAlreadyExists: true,
			ExpectedResults:   "abc",
		},
		{
			Description:     "Write, Write, last one wins",
			Sequence:        "W(abc);W(de)",
			ExpectedResults: "de",
		},
		{
			Description:     "Write, Read",
			Sequence:        "W(abc);R()",
			ExpectedResults: "abc",
		},

		// Delete
		{
			Description:       "Delete, file exists",
			Sequence:          "D()",
			FileAlreadyExists: true,
			ExpectedResults:   "",
		},
		{
			Description:     "Delete, file does not exist",
			Sequence:        "D()",
			ExpectNotFound:  true,
			ExpectedResults: "",
		},
		{
			Description:       "Delete, Read",
			Sequence:          "D();R()",
			FileAlreadyExists: true,
			ExpectNotFound:    true,
			ExpectedResults:   "",
		},

		// Properties
		{
			Description:       "Properties, file exists",
			Sequence:          "P(9)",
			FileAlreadyExists: true,
			ExpectedResults:   "some text",
		},
		{
			Description:     "Properties, file does not exist",
			Sequence:        "P(0)",
			ExpectNotFound:  true,
			ExpectedResults: "",
		},
		{
			Description:       "Write, Properties",
			Sequence:          "W(abcdef);P(6)",
			FileAlreadyExists: true,
			ExpectedResults:   "abcdef",
		},

		// List
		{
			Description:     "Write, List",
			Sequence:        "W(abc);L(1)",
			ExpectedResults: "abc",
		},
		{
			Description:       "Delete, List",
			Sequence:          "D();L(0)",
			FileAlreadyExists: true,
			ExpectedResults:   "",
		},
	}
}

// RunBackendTests runs backend conformance tests against the provided container
func RunBackendTests(t *testing.T, b azfs.Backend, container string) {
	t.Helper()
	runBackendTestsWithCases(t, b, container, DefaultBackendTestCases())
}

func runBackendTestsWithCases(t *testing.T, b azfs.Backend, container string, testCases []BackendTestCase) {
	t.Helper()
	ctx := context.Background()

	for i, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			prefix := fmt.Sprintf("conformance/%d/", i)
			name := prefix + "testfile.txt"
			defer teardownTestPrefix(t, b, container, prefix)

			if tc.FileAlreadyExists {
				require.NoError(t, b.Write(ctx, container, name, []byte("some text")))
			}

			actualContents, err := ExecuteSequence(t, b, container, name, tc.Sequence)

			if tc.ExpectNotFound {
				if !errors.Is(err, azfs.ErrNotFound) {
					t.Fatalf("%s: expected a not found error but got: %v", tc.Description, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("%s: expected success but got failure: %v", tc.Description, err)
			}

			if tc.ExpectedResults != actualContents {
				t.Fatalf("%s: expected results %q but got %q", tc.Description, tc.ExpectedResults, actualContents)
			}
		})
	}
}

func teardownTestPrefix(t *testing.T, b azfs.Backend, container, prefix string) {
	t.Helper()
	ctx := context.Background()
	entries, err := b.List(ctx, container, prefix, true)
	if err != nil {
		if !errors.Is(err, azfs.ErrNotFound) {
			t.Logf("warning: error listing files for cleanup: %v", err)
		}
		return
	}
	for _, e := range entries {
		if e.IsDirectory {
			continue
		}
		if err := b.Delete(ctx, container, e.FullPath); err != nil && !errors.Is(err, azfs.ErrNotFound) {
			t.Logf("warning: error deleting file %s: %v", e.FullPath, err)
		}
	}
}

// ExecuteSequence executes a sequence of backend operations against one object and returns its final contents.  A
// missing object reads as "".
//
//nolint:gocyclo
func ExecuteSequence(t *testing.T, b azfs.Backend, container, name, sequence string) (string, error) {
	t.Helper()
	ctx := context.Background()
	var commandErr error
SEQ:
	for _, command := range strings.Split(sequence, ";") {
		commandName, commandArg := parseCommand(t, command)

		switch commandName {
		case "R":
			var r io.ReadCloser
			r, commandErr = b.Read(ctx, container, name)
			if commandErr != nil {
				break SEQ
			}
			_, commandErr = io.ReadAll(r)
			_ = r.Close()
			if commandErr != nil {
				break SEQ
			}
		case "W":
			commandErr = b.Write(ctx, container, name, []byte(commandArg))
			if commandErr != nil {
				break SEQ
			}
		case "D":
			commandErr = b.Delete(ctx, container, name)
			if commandErr != nil {
				break SEQ
			}
		case "P":
			want := atoi(t, commandArg)
			var info *azfs.Info
			info, commandErr = b.Properties(ctx, container, name)
			if commandErr != nil {
				break SEQ
			}
			if info.Size != int64(want) {
				t.Fatalf("expected size %d but got %d", want, info.Size)
			}
			if info.Type != azfs.InfoTypeFile {
				t.Fatalf("expected type %s but got %s", azfs.InfoTypeFile, info.Type)
			}
		case "L":
			want := atoi(t, commandArg)
			prefix := utils.ParentPrefix(name)
			entries, err := b.List(ctx, container, prefix, false)
			if err != nil && !errors.Is(err, azfs.ErrNotFound) {
				commandErr = err
				break SEQ
			}
			got := 0
			for _, e := range entries {
				if e.FullPath == name && !e.IsDirectory {
					got++
				}
			}
			if got != want {
				t.Fatalf("expected %d listing entries for %s but got %d", want, name, got)
			}
		default:
			t.Fatalf("unknown command: %s", commandName)
		}
	}

	if commandErr != nil {
		return "", commandErr
	}

	r, err := b.Read(ctx, container, name)
	if errors.Is(err, azfs.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		t.Fatalf("error reading file: %s", err.Error())
	}
	defer func() { _ = r.Close() }()

	contents, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("error reading file: %s", err.Error())
	}
	return string(contents), nil
}

var commandArgsRegex = regexp.MustCompile(`^([a-zA-Z]+)\((.*)\)$`)

func parseCommand(t *testing.T, command string) (string, string) {
	t.Helper()
	results := commandArgsRegex.FindStringSubmatch(strings.TrimSpace(command))
	if len(results) != 3 {
		t.Fatalf("invalid command string: %s", command)
	}
	return results[1], results[2]
}

func atoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	if err != nil {
		t.Fatalf("invalid count: %s", s)
	}
	return n
}
