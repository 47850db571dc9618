package pathutils

import (
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

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// DirectoryResolver turns configured directories into paths usable as a process working directory.
type DirectoryResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewDirectoryResolver constructs a DirectoryResolver using the operating system home lookup.
func NewDirectoryResolver() *DirectoryResolver {
	return NewDirectoryResolverWithProvider(os.UserHomeDir)
}

// NewDirectoryResolverWithProvider constructs a DirectoryResolver with a custom home provider.
func NewDirectoryResolverWithProvider(provider HomeDirectoryProvider) *DirectoryResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &DirectoryResolver{homeDirectoryProvider: provider}
}

// Resolve expands a leading tilde and anchors a relative directory at the
// directory containing anchorFile. An empty anchorFile leaves relative paths
// relative to the process working directory.
func (resolver *DirectoryResolver) Resolve(candidateDirectory string, anchorFile string) string {
	trimmedDirectory := strings.TrimSpace(candidateDirectory)
	if len(trimmedDirectory) == 0 {
		return ""
	}

	expandedDirectory := resolver.ExpandHome(trimmedDirectory)
	if filepath.IsAbs(expandedDirectory) {
		return filepath.Clean(expandedDirectory)
	}

	trimmedAnchor := strings.TrimSpace(anchorFile)
	if len(trimmedAnchor) == 0 {
		return filepath.Clean(expandedDirectory)
	}
	return filepath.Join(filepath.Dir(trimmedAnchor), expandedDirectory)
}

// ExpandHome resolves leading tilde prefixes to the user's home directory.
func (resolver *DirectoryResolver) ExpandHome(candidatePath string) string {
	if resolver == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	resolvedHomeDirectory := resolver.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return candidatePath
	}

	switch {
	case candidatePath == tildeSymbolConstant:
		return resolvedHomeDirectory
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(candidatePath, tildeWithPathSeparatorPrefix):
		return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(candidatePath, tildeWithPathSeparatorPrefix))
	default:
		return candidatePath
	}
}

func (resolver *DirectoryResolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
