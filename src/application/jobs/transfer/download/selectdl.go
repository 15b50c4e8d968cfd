package download

import (
	"context"
	"net/url"
	"stem-separator-workers/src/lib/cerr"
	"strings"
)

var _ Downloader = SelectDLer{}

// NewSelectDLer routes YouTube links to youtubedler when one is given, everything else to genericdler.
func NewSelectDLer(youtubedler Downloader, genericdler Downloader) SelectDLer {
	return SelectDLer{
		genericdler: genericdler,
		youtubedler: youtubedler,
	}
}

type SelectDLer struct {
	genericdler Downloader
	youtubedler Downloader
}

func (s SelectDLer) Download(ctx context.Context, sourceURL string, outFilePath string) error {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return cerr.Field("source_url", sourceURL).Wrap(err).Error("Failed to parse source URL")
	}

	if s.youtubedler != nil && IsYoutubeHost(parsed.Host) {
		return s.youtubedler.Download(ctx, sourceURL, outFilePath)
	}

	return s.genericdler.Download(ctx, sourceURL, outFilePath)
}

func IsYoutubeHost(host string) bool {
	return strings.HasSuffix(host, "youtube.com") || host == "youtu.be"
}
