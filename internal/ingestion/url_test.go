package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestJobPosting_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`
			<html><body>
				<nav>Site navigation</nav>
				<div class="job-description">
					<h2>Senior Go Engineer</h2>
					<p>Build and operate backend services.</p>
				</div>
			</body></html>`))
	}))
	defer server.Close()

	text, err := IngestJobPosting(context.Background(), server.URL, false, false)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "backend services")
	assert.NotContains(t, text, "Site navigation")
}

func TestIngestJobPosting_StripsApplicationForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`
			<html><body>
				<main>
					<p>Design distributed systems.</p>
					<form id="application-form">First name: Last name:</form>
				</main>
			</body></html>`))
	}))
	defer server.Close()

	text, err := IngestJobPosting(context.Background(), server.URL, false, false)
	require.NoError(t, err)
	assert.Contains(t, text, "distributed systems")
	assert.NotContains(t, text, "First name")
}

func TestIngestJobPosting_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := IngestJobPosting(context.Background(), server.URL, false, false)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestIngestJobPosting_InvalidURL(t *testing.T) {
	_, err := IngestJobPosting(context.Background(), "not-a-url", false, false)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
