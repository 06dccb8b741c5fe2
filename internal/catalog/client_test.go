package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleCatalog = `{
	"carbonCreditProjects": {
		"VCS": {
			"standardName": "Verified Carbon Standard",
			"registry": "Verra",
			"projects": [
				{"projectId": "VCS1529", "projectName": "Test Forest", "token": "0xabc", "cert": "0xdef"}
			]
		},
		"GS": {
			"standardName": "Gold Standard",
			"registry": "Gold Standard Registry",
			"projects": [
				{"projectId": "GS1234", "projectName": "Wind Farm", "token": "0x111", "cert": ""}
			]
		}
	}
}`

func TestFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	catalog, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, len(catalog.CarbonCreditProjects))
	assert.Equal(t, 2, catalog.ProjectCount())

	vcs := catalog.CarbonCreditProjects["VCS"]
	assert.Equal(t, "Verra", vcs.Registry)
	require.Len(t, vcs.Projects, 1)
	assert.Equal(t, "VCS1529", vcs.Projects[0].ProjectID)
	assert.Equal(t, "0xabc", vcs.Projects[0].Token)
}

func TestFetchCatalogServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.FetchCatalog(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestFetchCatalogMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.FetchCatalog(context.Background())
	assert.Error(t, err)
}

func TestFetchCatalogMissingRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something": "else"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	_, err := client.FetchCatalog(context.Background())
	assert.Error(t, err)
}

func TestFetchRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	body, err := client.FetchRaw(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, sampleCatalog, string(body))
}
