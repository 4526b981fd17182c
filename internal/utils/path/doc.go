// Package pathutils resolves user supplied repository, clone and tool locations into absolute paths.
package pathutils
