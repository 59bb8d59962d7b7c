package internal

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// videoExtensions are the container formats yt-dlp may leave in the cache.
var videoExtensions = []string{".mp4", ".webm", ".mkv", ".mov", ".avi"}

// Cache maps source URLs to directories holding the artifacts each
// pipeline stage produces. Artifacts are never mutated after creation.
type Cache struct {
	root string
}

// NewCache creates a cache rooted at the given directory.
func NewCache(root string) *Cache {
	return &Cache{root: root}
}

// Root returns the cache root directory.
func (c *Cache) Root() string {
	return c.root
}

// Key derives the deterministic cache key for a URL.
func (c *Cache) Key(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return strconv.FormatUint(h.Sum64(), 10)
}

// Dir resolves the cache directory for a URL without creating it.
func (c *Cache) Dir(url string) string {
	return filepath.Join(c.root, c.Key(url))
}

// EnsureDir resolves and creates the cache directory for a URL.
func (c *Cache) EnsureDir(url string) (string, error) {
	dir := c.Dir(url)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrCacheIO, dir, err)
	}
	return dir, nil
}

// AudioPath returns the path of the extracted audio artifact.
func (c *Cache) AudioPath(dir string) string {
	return filepath.Join(dir, "audio.wav")
}

// TranscriptPath returns the path of the transcript artifact.
func (c *Cache) TranscriptPath(dir string) string {
	return filepath.Join(dir, "transcript.json")
}

// ReportPath returns the path of the report artifact for a provider and language.
func (c *Cache) ReportPath(dir string, provider Provider, lang string) string {
	return filepath.Join(dir, fmt.Sprintf("report_%s_%s.json", provider, lang))
}

// VideoTemplate returns the yt-dlp output template for the cache directory.
func (c *Cache) VideoTemplate(dir string) string {
	return filepath.Join(dir, "video.%(ext)s")
}

// FindVideo locates a previously downloaded video in the cache directory.
// Returns an empty string when no video artifact exists.
func (c *Cache) FindVideo(dir string) string {
	return findVideoInDir(dir)
}

func findVideoInDir(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, candidate := range videoExtensions {
			if ext == candidate {
				path := filepath.Join(dir, entry.Name())
				if ArtifactExists(path) {
					return path
				}
			}
		}
	}
	return ""
}

// Lock acquires an exclusive lock on the cache directory for the duration
// of a pipeline run. A second run against the same URL fails with
// ErrCacheBusy instead of clobbering half-written artifacts.
func (c *Cache) Lock(dir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dir, ".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: locking %s: %v", ErrCacheIO, dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrCacheBusy, dir)
	}
	return lock, nil
}

// ArtifactExists reports whether an artifact exists and is non-empty.
// Zero-byte files are leftovers from interrupted runs and count as absent.
func ArtifactExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
