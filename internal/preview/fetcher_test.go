package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDocument_CollectsOpenGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
	<title>Fallback Title</title>
	<meta property="og:title" content="Jane Doe - Portfolio">
	<meta property="og:description" content="Projects and writing.">
	<meta property="og:image" content="https://example.com/jane.png">
	<meta property="og:site_name" content="jane.dev">
	<meta name="description" content="ignored, not og">
</head>
<body><p>hello</p></body>
</html>`))
	}))
	defer server.Close()

	props, err := fetchDocument(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe - Portfolio", props["og:title"])
	assert.Equal(t, "Projects and writing.", props["og:description"])
	assert.Equal(t, "https://example.com/jane.png", props["og:image"])
	assert.Equal(t, "jane.dev", props["og:site_name"])
	assert.Equal(t, "Fallback Title", props["title"])
	assert.NotContains(t, props, "description")
}

func TestFetchDocument_TitleOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>  Plain Page  </title></head><body></body></html>`))
	}))
	defer server.Close()

	props, err := fetchDocument(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Plain Page", props["title"])
}

func TestFetchDocument_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := fetchDocument(context.Background(), server.Client(), server.URL)
	assert.Error(t, err)
}

// html.Parse is lenient; broken markup still yields whatever was readable.
func TestFetchDocument_MalformedHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:title" content="Still Works"`))
	}))
	defer server.Close()

	props, err := fetchDocument(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Still Works", props["og:title"])
}
