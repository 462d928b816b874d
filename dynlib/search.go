package dynlib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve looks for fileName in each directory of paths and returns the
// first candidate that is a regular, non-empty file. Candidate names are
// built with the configured platform convention; a directory whose name
// does not fit the configured capacity is skipped, or fails the search in
// strict mode.
func Resolve(paths []string, fileName string, opts ...Option) (string, error) {
	cfg, err := resolveConfig(opts...)
	if err != nil {
		return "", err
	}
	return resolve(paths, fileName, cfg)
}

func resolve(paths []string, fileName string, cfg config) (string, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return "", fmt.Errorf("library file name cannot be empty")
	}

	namer := &Namer{platform: cfg.platform, capacity: cfg.capacity, strict: cfg.strictNames}

	var invalidCandidates []error
	for _, dir := range paths {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}

		candidate, err := namer.Name(dir, fileName)
		if err != nil {
			return "", err
		}
		if candidate == "" {
			continue
		}

		path, err := checkCandidate(candidate)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			invalidCandidates = append(invalidCandidates, fmt.Errorf("%s: %w", candidate, err))
		}
	}

	if len(invalidCandidates) > 0 {
		return "", fmt.Errorf("%w: found candidates for %q but none are valid: %w", ErrLibraryNotFound, fileName, errors.Join(invalidCandidates...))
	}
	return "", fmt.Errorf("%w: %q in %v", ErrLibraryNotFound, fileName, paths)
}

// OpenSearch resolves fileName against paths and opens the result. With no
// paths the bare platform name is handed to the OS loader, which applies its
// own search order.
func OpenSearch(paths []string, fileName string, opts ...Option) (*Library, error) {
	cfg, err := resolveConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		name := cfg.platform.LibraryName("", fileName, cfg.capacity)
		if name == "" {
			return nil, fmt.Errorf("%w: %d bytes available for %q", ErrNameTooLong, cfg.capacity, fileName)
		}
		return open(name, cfg)
	}

	path, err := resolve(paths, fileName, cfg)
	if err != nil {
		return nil, err
	}
	return open(path, cfg)
}

// checkCandidate accepts a search candidate that is a regular, non-empty
// file and returns its absolute path.
func checkCandidate(candidate string) (string, error) {
	absPath, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("search candidate %q has no absolute form: %w", candidate, err)
	}

	info, err := os.Stat(absPath)
	switch {
	case err != nil:
		return "", fmt.Errorf("search candidate %q: %w", absPath, err)
	case info.IsDir():
		return "", fmt.Errorf("search candidate %q is a directory", absPath)
	case info.Size() == 0:
		return "", fmt.Errorf("search candidate %q is an empty file", absPath)
	}
	return absPath, nil
}
