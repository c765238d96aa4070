package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
)

// Ensure FileStore implements chatpage.PageStore at compile time.
var _ chatpage.PageStore = (*FileStore)(nil)

// FileStore implements chatpage.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
// Save is safe for concurrent use.
type FileStore struct {
	baseDir string
	name    string

	mu      sync.Mutex
	written map[string]bool
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		written: make(map[string]bool),
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page under the temporary directory. Two sources that map to
// the same path are kept apart with a numeric suffix.
func (s *FileStore) Save(ctx context.Context, page *chatpage.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := PagePath(page.Source)
	if err != nil {
		return err
	}
	content, err := FormatPage(page)
	if err != nil {
		return fmt.Errorf("formatting %s: %w", page.Source, err)
	}

	fullPath := filepath.Join(s.tempDir(), s.reserve(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// reserve claims relPath, or the first free "name-N.md" variant of it.
func (s *FileStore) reserve(relPath string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := relPath
	stem := strings.TrimSuffix(relPath, ".md")
	for n := 2; s.written[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d.md", stem, n)
	}
	s.written[candidate] = true
	return candidate
}

// Commit replaces the output directory with everything saved so far.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
