// Package output renders and writes the merged subscription artifacts.
package output

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options defines where artifacts are written.
type Options struct {
	PlainPath    string
	Base64Path   string
	CreateBackup bool
}

// Artifacts holds the rendered contents that were written.
type Artifacts struct {
	Plain     string
	Base64    string
	NodeCount int
	Checksum  string // SHA-256 of Plain
	Backups   []string
}

// RenderPlain joins nodes with newlines and ends a non-empty list with exactly
// one trailing newline. An empty list renders as the empty string.
func RenderPlain(nodes []string) string {
	if len(nodes) == 0 {
		return ""
	}

	return strings.Join(nodes, "\n") + "\n"
}

// RenderBase64 encodes the plaintext artifact and appends a trailing newline.
func RenderBase64(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain)) + "\n"
}

// Render builds both artifacts without touching the filesystem.
func Render(nodes []string) Artifacts {
	plain := RenderPlain(nodes)

	return Artifacts{
		Plain:     plain,
		Base64:    RenderBase64(plain),
		NodeCount: len(nodes),
		Checksum:  Checksum(plain),
	}
}

// Checksum computes the hex SHA-256 hash of content.
func Checksum(content string) string {
	hash := sha256.Sum256([]byte(content))

	return hex.EncodeToString(hash[:])
}

// Write renders nodes and fully replaces both artifact files.
func Write(opts Options, nodes []string) (Artifacts, error) {
	art := Render(nodes)

	files := []struct {
		path    string
		content string
	}{
		{opts.PlainPath, art.Plain},
		{opts.Base64Path, art.Base64},
	}

	for _, f := range files {
		backup, err := writeFile(f.path, f.content, opts.CreateBackup)
		if err != nil {
			return art, err
		}

		if backup != "" {
			art.Backups = append(art.Backups, backup)
		}
	}

	return art, nil
}

// WriteFile replaces path with content, creating parent directories.
func WriteFile(path, content string) error {
	_, err := writeFile(path, content, false)

	return err
}

func writeFile(path, content string, backup bool) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	var backupPath string

	// Create backup if file exists
	if backup {
		if _, statErr := os.Stat(path); statErr == nil {
			backupPath = path + ".bak"
			if err := os.Rename(path, backupPath); err != nil {
				return "", fmt.Errorf("failed to back up %s: %w", path, err)
			}
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return backupPath, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return backupPath, nil
}
