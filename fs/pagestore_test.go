package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
	"github.com/wanderxuhq/chat-with-page-sub000/fs"
)

// Story: Atomic File Storage
// The store uses temp directory for atomic updates

func TestFileStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")

	// When I save a page
	err := store.Save(context.Background(), &chatpage.Page{
		Source:  "https://example.com/news/storm",
		Article: &chatpage.Article{Title: "Storm Warning"},
		Content: "Heavy rain expected.",
	})

	// Then no error occurs
	require.NoError(t, err)

	// And the file exists in the temp directory (not final)
	tempPath := filepath.Join(base, "output.tmp", "news", "storm.md")
	_, err = os.Stat(tempPath)
	require.NoError(t, err, "file should exist in temp directory")

	// And final directory does not exist yet
	finalPath := filepath.Join(base, "output", "news", "storm.md")
	_, err = os.Stat(finalPath)
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestFileStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with saved pages
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	err := store.Save(context.Background(), &chatpage.Page{
		Source:  "https://example.com/a",
		Content: "A",
	})
	require.NoError(t, err)

	// When I commit
	err = store.Commit()

	// Then final directory exists with content
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output", "a.md"))
	require.NoError(t, err, "file should exist in final directory after commit")

	// And temp directory is gone
	_, err = os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestFileStore_CommitReplacesPreviousOutput(t *testing.T) {
	t.Parallel()

	// Given an output directory from an earlier run
	base := t.TempDir()
	stale := filepath.Join(base, "output", "old.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	// When a new run saves and commits
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &chatpage.Page{Source: "article.html", Content: "new"}))
	require.NoError(t, store.Commit())

	// Then only the new page remains
	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "output", "article.md"))
	assert.NoError(t, err)
}

func TestFileStore_CommitWithoutPagesCreatesEmptyOutput(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")

	require.NoError(t, store.Commit())

	info, err := os.Stat(filepath.Join(base, "output"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store with saved pages
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	err := store.Save(context.Background(), &chatpage.Page{
		Source:  "https://example.com/a",
		Content: "A",
	})
	require.NoError(t, err)

	// When I abort
	err = store.Abort()

	// Then the temp directory is cleaned up
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")

	// And final directory doesn't exist
	_, err = os.Stat(filepath.Join(base, "output"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestFileStore_IncludesFrontmatter(t *testing.T) {
	t.Parallel()

	// Given a page with article metadata
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	err := store.Save(context.Background(), &chatpage.Page{
		Source: "https://example.com/intro",
		Article: &chatpage.Article{
			Title:         "Introduction",
			Byline:        "Ana Silva",
			SiteName:      "Example News",
			PublishedTime: "2024-03-01",
		},
		Content: "Welcome aboard.",
	})
	require.NoError(t, err)
	require.NoError(t, store.Commit())

	// When I read the file back
	data, err := os.ReadFile(filepath.Join(base, "output", "intro.md"))
	require.NoError(t, err)
	fm, body, err := fs.ParsePage(string(data))

	// Then the front matter carries the metadata
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/intro", fm.Source)
	assert.Equal(t, "Introduction", fm.Title)
	assert.Equal(t, "Ana Silva", fm.Byline)
	assert.Equal(t, "Example News", fm.Site)
	assert.Equal(t, "2024-03-01", fm.Published)
	assert.Equal(t, fs.ContentHash("Welcome aboard."), fm.Hash)
	// And content follows the front matter
	assert.Equal(t, "Welcome aboard.\n", body)
}

func TestFileStore_SeparatesCollidingPaths(t *testing.T) {
	t.Parallel()

	// Given two sources on different hosts with the same path
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &chatpage.Page{Source: "https://a.example/story", Content: "one"}))
	require.NoError(t, store.Save(context.Background(), &chatpage.Page{Source: "https://b.example/story", Content: "two"}))
	require.NoError(t, store.Commit())

	// Then both are kept
	first, err := os.ReadFile(filepath.Join(base, "output", "story.md"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(base, "output", "story-2.md"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "one")
	assert.Contains(t, string(second), "two")
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	// Given a store
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")

	// When I try to save a page with path traversal
	err := store.Save(context.Background(), &chatpage.Page{
		Source:  "https://example.com/../../../etc/passwd",
		Content: "bad content",
	})

	// Then an error is returned
	require.Error(t, err, "path traversal should be rejected")
	assert.Equal(t, chatpage.EINVALID, chatpage.ErrorCode(err))
	assert.Contains(t, chatpage.ErrorMessage(err), "path traversal")
}
