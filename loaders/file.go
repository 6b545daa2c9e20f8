package loaders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"
)

// FileLoader loads every file under Root that matches one of Patterns.
// Patterns use doublestar syntax, e.g. "docs/**/*.md".
type FileLoader struct {
	Root     string
	Patterns []string
}

func NewFileLoader(root string, patterns ...string) *FileLoader {
	if len(patterns) == 0 {
		patterns = []string{"**/*"}
	}
	return &FileLoader{
		Root:     root,
		Patterns: patterns,
	}
}

func (l *FileLoader) Load(ctx context.Context) ([]Document, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		doc, err := l.readFile(l.Root, filepath.Base(l.Root))
		if err != nil {
			return nil, err
		}
		return []Document{doc}, nil
	}
	fsys := os.DirFS(l.Root)
	seen := map[string]bool{}
	var docs []Document
	for _, pattern := range l.Patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if seen[match] {
				continue
			}
			seen[match] = true
			doc, err := l.readFile(filepath.Join(l.Root, filepath.FromSlash(match)), match)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(doc.Content) == "" {
				log.Debugf("skipping empty file %s", match)
				continue
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (l *FileLoader) readFile(path, name string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return Document{
		Source:  path,
		Content: string(content),
		Metadata: map[string]string{
			"file_name": filepath.Base(name),
			"extension": strings.TrimPrefix(filepath.Ext(name), "."),
		},
	}, nil
}
