package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitsense/internal/utils/path"
)

const (
	testHomeDirectoryConstant    = "/home/tester"
	testWorkingDirectoryConstant = "/work/area"
)

func TestLocationResolverResolve(testInstance *testing.T) {
	resolver := pathutils.NewLocationResolverWithProviders(
		func() (string, error) { return filepath.FromSlash(testHomeDirectoryConstant), nil },
		func() (string, error) { return filepath.FromSlash(testWorkingDirectoryConstant), nil },
	)

	testCases := []struct {
		name          string
		input         string
		expectedPath  string
		expectedError error
	}{
		{name: "tilde_only", input: "~", expectedPath: filepath.FromSlash(testHomeDirectoryConstant)},
		{name: "tilde_prefix", input: "~/repos/service", expectedPath: filepath.Join(filepath.FromSlash(testHomeDirectoryConstant), "repos", "service")},
		{name: "relative", input: "  service/.git/..  ", expectedPath: filepath.Join(filepath.FromSlash(testWorkingDirectoryConstant), "service")},
		{name: "dot", input: ".", expectedPath: filepath.FromSlash(testWorkingDirectoryConstant)},
		{name: "tilde_user_untouched", input: "~other/repos", expectedPath: filepath.Join(filepath.FromSlash(testWorkingDirectoryConstant), "~other", "repos")},
		{name: "blank", input: " \t", expectedError: pathutils.ErrLocationMissing},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedPath, resolveError := resolver.Resolve(testCase.input)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, resolveError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}

func TestLocationResolverAbsoluteInput(testInstance *testing.T) {
	absoluteDirectory := testInstance.TempDir()
	resolver := pathutils.NewLocationResolver()

	resolvedPath, resolveError := resolver.Resolve(filepath.Join(absoluteDirectory, "nested", ".."))
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, absoluteDirectory, resolvedPath)
}

func TestLocationResolverExpandHomeFailures(testInstance *testing.T) {
	providerCalls := 0
	resolver := pathutils.NewLocationResolverWithProviders(
		func() (string, error) {
			providerCalls++
			return "", errors.New("no home")
		},
		nil,
	)

	require.Equal(testInstance, "~/repos", resolver.ExpandHome("~/repos"))
	require.Equal(testInstance, "~", resolver.ExpandHome("~"))
	require.Equal(testInstance, "git@github.com:org/repo.git", resolver.ExpandHome("git@github.com:org/repo.git"))
	require.Equal(testInstance, 1, providerCalls)

	_, workingDirectoryError := pathutils.NewLocationResolverWithProviders(nil, func() (string, error) {
		return "", errors.New("no working directory")
	}).Resolve("relative")
	require.Error(testInstance, workingDirectoryError)
}
