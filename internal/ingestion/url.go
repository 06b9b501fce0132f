package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/cvitae/cvitae/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestJobPosting fetches a job posting URL and returns its cleaned
// text. Platform detection picks board-specific selectors; when
// useBrowser is set, pages that come back nearly empty are re-rendered
// in a headless browser.
func IngestJobPosting(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, error) {
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[INGEST] URL: %s", urlStr)
		log.Printf("[INGEST] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[INGEST] Fetched HTML: %d bytes", len(result.HTML))
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if verbose {
		log.Printf("[INGEST] Extracted text: %d chars", len(textContent))
	}

	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		if verbose {
			log.Printf("[INGEST] Content too short (%d chars < %d), falling back to browser rendering",
				len(textContent), fetch.MinContentLength)
		}
		browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, fetch.DefaultTimeout, verbose)
		if browserErr != nil {
			if verbose {
				log.Printf("[INGEST] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else if rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
			textContent = rendered
			if verbose {
				log.Printf("[INGEST] Browser extracted text: %d chars", len(textContent))
			}
		}
	}

	return CleanText(textContent), nil
}
