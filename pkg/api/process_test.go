package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

func testClient(url string) *Client {
	return New(url, 5*time.Second, zerolog.Nop())
}

func TestImprove(t *testing.T) {
	var gotBody models.Draft
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/process-email", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(models.ProcessingResult{
			ImprovedContent: "Hi,\n\nGreetings.",
			Suggestions:     []string{"Add a greeting"},
			Corrections:     []string{},
		})
	}))
	defer server.Close()

	result, err := testClient(server.URL).Improve(context.Background(), models.Draft{
		Content: "hi",
		Tone:    models.ToneProfessional,
	})
	require.NoError(t, err)

	assert.Equal(t, "hi", gotBody.Content)
	assert.Equal(t, models.ToneProfessional, gotBody.Tone)
	assert.Equal(t, "Hi,\n\nGreetings.", result.ImprovedContent)
	assert.Equal(t, []string{"Add a greeting"}, result.Suggestions)
	assert.Empty(t, result.Corrections)
}

func TestImproveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "model unavailable"})
	}))
	defer server.Close()

	_, err := testClient(server.URL).Improve(context.Background(), models.Draft{Content: "hello"})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Equal(t, "model unavailable", reqErr.Detail)
	assert.Equal(t, "model unavailable", ErrorMessage(err))
}

func TestImproveServerErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Improve(context.Background(), models.Draft{Content: "hello"})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Empty(t, reqErr.Detail)
	assert.Equal(t, GenericProcessMessage, ErrorMessage(err))
}

func TestImproveTransportError(t *testing.T) {
	// Point at a server that is already gone.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).Improve(context.Background(), models.Draft{Content: "hello"})
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, GenericProcessMessage, ErrorMessage(err))
}

func TestImproveMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Improve(context.Background(), models.Draft{Content: "hello"})
	assert.Error(t, err)
}
