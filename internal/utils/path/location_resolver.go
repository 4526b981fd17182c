package pathutils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// ErrLocationMissing indicates that a blank path was supplied where a directory or file is required.
var ErrLocationMissing = errors.New("location must not be empty")

// DirectoryProvider resolves a well-known directory such as the home or working directory.
type DirectoryProvider func() (string, error)

// LocationResolver turns user supplied paths into absolute, home-expanded locations.
type LocationResolver struct {
	homeDirectoryProvider    DirectoryProvider
	workingDirectoryProvider DirectoryProvider
	homeDirectory            string
	homeDirectoryError       error
	homeDirectoryGuard       sync.Once
}

// NewLocationResolver constructs a LocationResolver backed by the operating system lookups.
func NewLocationResolver() *LocationResolver {
	return NewLocationResolverWithProviders(os.UserHomeDir, os.Getwd)
}

// NewLocationResolverWithProviders constructs a LocationResolver with custom directory lookups.
func NewLocationResolverWithProviders(homeDirectoryProvider DirectoryProvider, workingDirectoryProvider DirectoryProvider) *LocationResolver {
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	if workingDirectoryProvider == nil {
		workingDirectoryProvider = os.Getwd
	}
	return &LocationResolver{
		homeDirectoryProvider:    homeDirectoryProvider,
		workingDirectoryProvider: workingDirectoryProvider,
	}
}

// ExpandHome resolves a leading tilde to the user's home directory and leaves every other value untouched.
func (resolver *LocationResolver) ExpandHome(candidatePath string) string {
	if resolver == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	homeDirectory := resolver.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildeSymbolConstant {
		return homeDirectory
	}
	if strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant) {
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	}
	if strings.HasPrefix(candidatePath, tildeWithPathSeparatorPrefix) {
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeWithPathSeparatorPrefix))
	}

	return candidatePath
}

// Resolve trims, home-expands and absolutizes candidatePath against the working directory.
func (resolver *LocationResolver) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return "", ErrLocationMissing
	}
	if resolver == nil {
		return filepath.Abs(trimmedPath)
	}

	expandedPath := resolver.ExpandHome(trimmedPath)
	if filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath), nil
	}

	workingDirectory, workingDirectoryError := resolver.workingDirectoryProvider()
	if workingDirectoryError != nil {
		return "", workingDirectoryError
	}
	return filepath.Join(workingDirectory, expandedPath), nil
}

func (resolver *LocationResolver) resolveHomeDirectory() string {
	resolver.homeDirectoryGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
