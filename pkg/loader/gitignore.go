// Package loader prepares the data directory before the stores open it.
// This file handles automatic .gitignore management for the .lv directory.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dataDirPattern = ".lv/"
	gitignoreNote  = "# lv local state (todos, outline)"
)

// PrepareDataDir creates dataDir and, when its parent is a git checkout,
// makes sure the checkout ignores it.
func PrepareDataDir(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if filepath.Base(filepath.Clean(dataDir)) != ".lv" {
		return nil
	}
	project := filepath.Dir(filepath.Clean(dataDir))
	if _, err := os.Stat(filepath.Join(project, ".git")); err != nil {
		return nil
	}
	if err := EnsureDataDirInGitignore(project); err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	return nil
}

// EnsureDataDirInGitignore ensures that .lv/ is listed in the project's
// .gitignore file.
//
// The function is idempotent and safe to call multiple times.
// It will:
//   - Create .gitignore if it doesn't exist
//   - Add ".lv/" if it's not already present (checks for .lv, .lv/, .lv/*, etc.)
//   - Preserve existing file content and formatting
func EnsureDataDirInGitignore(projectDir string) error {
	if projectDir == "" {
		var err error
		projectDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	gitignorePath := filepath.Join(projectDir, ".gitignore")

	alreadyPresent, err := isDataDirInGitignore(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if alreadyPresent {
		return nil
	}

	return appendToGitignore(gitignorePath, dataDirPattern)
}

// isDataDirInGitignore checks if .lv is already covered by the .gitignore
// file.
func isDataDirInGitignore(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if matchesDataDirPattern(line) {
			return true, nil
		}
	}

	return false, scanner.Err()
}

// matchesDataDirPattern checks if a gitignore line covers the .lv directory.
func matchesDataDirPattern(line string) bool {
	normalized := strings.TrimPrefix(line, "/")

	switch normalized {
	case ".lv", ".lv/", ".lv/*", ".lv/**", ".lv/**/*":
		return true
	}
	return false
}

// appendToGitignore appends a pattern to the .gitignore file, creating it if
// needed and keeping a blank line between existing content and the new entry.
func appendToGitignore(path string, pattern string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	var toWrite string
	if len(content) == 0 {
		toWrite = gitignoreNote + "\n" + pattern + "\n"
	} else {
		if content[len(content)-1] != '\n' {
			toWrite = "\n"
		}
		toWrite += "\n" + gitignoreNote + "\n" + pattern + "\n"
	}

	_, err = file.WriteString(toWrite)
	return err
}
