package internal

import (
	"context"
	"fmt"

	"github.com/lrstanley/go-ytdlp"
)

// VideoDownloader fetches the source video for a URL into a cache directory.
type VideoDownloader interface {
	Download(ctx context.Context, url, dir string) (string, error)
}

// YtDlpDownloader downloads videos with yt-dlp.
type YtDlpDownloader struct {
	verbose bool
}

// NewYtDlpDownloader creates a yt-dlp backed downloader.
func NewYtDlpDownloader(verbose bool) *YtDlpDownloader {
	return &YtDlpDownloader{verbose: verbose}
}

// Download fetches the best available format into dir as video.<ext> and
// returns the path of the downloaded file.
func (d *YtDlpDownloader) Download(ctx context.Context, url, dir string) (string, error) {
	if d.verbose {
		fmt.Println("Downloading video...")
	}

	dl := ytdlp.New().
		Format("best").
		NoPlaylist().
		ExtractorArgs("youtube:player_client=android,web").
		Output(fmt.Sprintf("%s/video.%%(ext)s", dir))

	result, err := dl.Run(ctx, url)
	if err != nil {
		if result != nil {
			return "", fmt.Errorf("%w: %s: %v\n%s", ErrDownloadFailed, url, err, result.Stderr)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrDownloadFailed, url, err)
	}

	video := findVideoInDir(dir)
	if video == "" {
		return "", fmt.Errorf("%w: %s: no video file produced", ErrDownloadFailed, url)
	}

	if d.verbose {
		fmt.Printf("Downloaded %s\n", video)
	}

	return video, nil
}
