package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"grocery-parser/internal/infrastructure/config"
	"grocery-parser/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PageFetcher downloads recipe pages.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Fetcher is the HTTP implementation of PageFetcher.
type Fetcher struct {
	client   *resty.Client
	maxBytes int64
}

// NewFetcher builds a fetcher from the fetch configuration.
func NewFetcher(cfg config.FetchConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &Fetcher{
		client:   client,
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch downloads url and returns its body as a string. Any status
// other than 200 is an error, as is a body that is not valid UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", common.ErrFetchError.WithErr(fmt.Errorf("fetch %s: %w", url, err))
	}

	common.LogDebug("page fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode() != http.StatusOK {
		return "", common.ErrFetchError.WithErr(fmt.Errorf("fetch %s: status %d", url, resp.StatusCode()))
	}

	body := resp.Body()
	if f.maxBytes > 0 && int64(len(body)) > f.maxBytes {
		body = body[:f.maxBytes]
		// drop a rune split by the cut
		for i := 0; i < utf8.UTFMax && len(body) > 0; i++ {
			if r, _ := utf8.DecodeLastRune(body); r != utf8.RuneError {
				break
			}
			body = body[:len(body)-1]
		}
	}

	html := string(body)
	if !utf8.ValidString(html) {
		return "", common.ErrFetchError.WithErr(fmt.Errorf("fetch %s: body is not valid UTF-8", url))
	}
	if strings.TrimSpace(html) == "" {
		return "", common.ErrFetchError.WithErr(fmt.Errorf("fetch %s: empty body", url))
	}
	return html, nil
}
