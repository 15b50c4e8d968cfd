package download

import (
	"context"
	"io"
	"net/http"
	"os"
	"stem-separator-workers/src/lib/cerr"

	"github.com/apex/log"
)

var _ Downloader = GenericDLer{}

func NewGenericDLer(client *http.Client) GenericDLer {
	if client == nil {
		client = http.DefaultClient
	}

	return GenericDLer{
		client: client,
	}
}

// GenericDLer fetches a plain HTTP(S) URL.
type GenericDLer struct {
	client *http.Client
}

func (g GenericDLer) Download(ctx context.Context, sourceURL string, outFilePath string) error {
	errctx := cerr.Field("source_url", sourceURL)
	log.WithField("source_url", sourceURL).Info("Running generic download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to create download request")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to fetch file from provided source")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errctx.Field("status_code", resp.StatusCode).Error("Source responded with an error status")
	}

	out, err := os.Create(outFilePath)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to create temp file")
	}
	defer out.Close()

	if _, err = io.Copy(out, resp.Body); err != nil {
		return errctx.Wrap(err).Error("Failed to write source contents out to file")
	}

	return nil
}
