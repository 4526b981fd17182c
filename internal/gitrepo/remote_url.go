package gitrepo

import "strings"

const (
	urlSchemeSeparatorConstant = "://"
	locationSeparatorsConstant = `/\:`
	trailingSeparatorsConstant = `/\`
	gitSuffixConstant          = ".git"
)

// RepositoryNameFromLocation derives the directory git clone would create for
// location. URLs, scp-style remotes and local paths all yield their final path
// segment without the ".git" suffix.
func RepositoryNameFromLocation(location string) (string, error) {
	trimmedLocation := strings.TrimSpace(location)
	if schemeIndex := strings.Index(trimmedLocation, urlSchemeSeparatorConstant); schemeIndex != -1 {
		trimmedLocation = trimmedLocation[schemeIndex+len(urlSchemeSeparatorConstant):]
	}
	trimmedLocation = strings.TrimRight(trimmedLocation, trailingSeparatorsConstant)

	lastSeparatorIndex := strings.LastIndexAny(trimmedLocation, locationSeparatorsConstant)
	repositoryName := strings.TrimSuffix(trimmedLocation[lastSeparatorIndex+1:], gitSuffixConstant)
	if len(repositoryName) == 0 {
		return "", ErrRepositoryNameUnresolved
	}
	return repositoryName, nil
}
