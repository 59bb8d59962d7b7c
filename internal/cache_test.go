package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheKeyDeterministic(t *testing.T) {
	cache := NewCache(t.TempDir())

	url := "https://youtube.com/watch?v=X"
	if cache.Key(url) != cache.Key(url) {
		t.Fatalf("same URL produced different keys")
	}
	if cache.Dir(url) != cache.Dir(url) {
		t.Fatalf("same URL produced different directories")
	}
}

func TestCacheKeyDistinct(t *testing.T) {
	cache := NewCache(t.TempDir())

	urls := []string{
		"https://youtube.com/watch?v=A",
		"https://youtube.com/watch?v=B",
		"https://youtu.be/A",
		"https://vimeo.com/12345",
		"https://youtube.com/watch?v=A&t=10",
	}

	seen := make(map[string]string)
	for _, url := range urls {
		key := cache.Key(url)
		if prev, ok := seen[key]; ok {
			t.Fatalf("key collision: %q and %q both map to %s", prev, url, key)
		}
		seen[key] = url
	}
}

func TestCacheEnsureDir(t *testing.T) {
	root := t.TempDir()
	cache := NewCache(root)

	dir, err := cache.EnsureDir("https://youtube.com/watch?v=X")
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if filepath.Dir(dir) != root {
		t.Fatalf("cache dir %s not directly under root %s", dir, root)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("cache dir was not created: %v", err)
	}
}

func TestArtifactExists(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.wav")
	if ArtifactExists(missing) {
		t.Fatalf("missing file reported as existing")
	}

	empty := filepath.Join(dir, "empty.wav")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ArtifactExists(empty) {
		t.Fatalf("zero-byte file reported as existing")
	}

	full := filepath.Join(dir, "audio.wav")
	if err := os.WriteFile(full, []byte("data"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !ArtifactExists(full) {
		t.Fatalf("non-empty file reported as missing")
	}
}

func TestArtifactPaths(t *testing.T) {
	cache := NewCache(t.TempDir())
	dir := cache.Dir("https://youtube.com/watch?v=X")

	if got := filepath.Base(cache.AudioPath(dir)); got != "audio.wav" {
		t.Fatalf("audio artifact named %s", got)
	}
	if got := filepath.Base(cache.TranscriptPath(dir)); got != "transcript.json" {
		t.Fatalf("transcript artifact named %s", got)
	}
	if got := filepath.Base(cache.ReportPath(dir, ProviderOpenAI, "en")); got != "report_openai_en.json" {
		t.Fatalf("report artifact named %s", got)
	}
}

func TestFindVideo(t *testing.T) {
	cache := NewCache(t.TempDir())
	dir, err := cache.EnsureDir("https://youtube.com/watch?v=X")
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}

	if got := cache.FindVideo(dir); got != "" {
		t.Fatalf("found video in empty cache dir: %s", got)
	}

	// non-video artifacts are ignored
	if err := os.WriteFile(filepath.Join(dir, "audio.wav"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := cache.FindVideo(dir); got != "" {
		t.Fatalf("audio artifact mistaken for video: %s", got)
	}

	video := filepath.Join(dir, "video.webm")
	if err := os.WriteFile(video, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := cache.FindVideo(dir); got != video {
		t.Fatalf("FindVideo = %s, want %s", got, video)
	}
}

func TestCacheLockExcludesSecondRun(t *testing.T) {
	cache := NewCache(t.TempDir())
	dir, err := cache.EnsureDir("https://youtube.com/watch?v=X")
	if err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}

	lock, err := cache.Lock(dir)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	if _, err := cache.Lock(dir); err == nil {
		t.Fatalf("second lock on the same cache dir succeeded")
	}
}
