package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, "http://localhost:11434", c.endpoint)
	assert.Equal(t, "llama3:instruct", c.model)
	assert.NotNil(t, c.client)

	c = NewClient("http://custom:11434", "mistral")
	assert.Equal(t, "http://custom:11434", c.endpoint)
	assert.Equal(t, "mistral", c.model)
}

func TestGenerateJSON(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(generateResponse{Response: `{"entities":[]}`})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "llama3:instruct")
	out, err := c.GenerateJSON(context.Background(), "extract this")
	require.NoError(t, err)
	assert.Equal(t, `{"entities":[]}`, out)

	assert.Equal(t, "llama3:instruct", got.Model)
	assert.Equal(t, "extract this", got.Prompt)
	assert.Equal(t, "json", got.Format)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.1, got.Options["temperature"])
}

func TestGeneratePlainText(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(generateResponse{Response: "csv here"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	out, err := c.Generate(context.Background(), "make tables")
	require.NoError(t, err)
	assert.Equal(t, "csv here", out)
	assert.Empty(t, got.Format)
	assert.Equal(t, 0.0, got.Options["temperature"])
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.GenerateJSON(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGenerateUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "")
	_, err := c.Generate(context.Background(), "x")
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: `{"ok":true}`})
	}))
	defer srv.Close()

	assert.True(t, NewClient(srv.URL, "").Ping(context.Background()))
	assert.False(t, NewClient("http://127.0.0.1:1", "").Ping(context.Background()))
}

func TestPingServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.False(t, NewClient(srv.URL, "").Ping(context.Background()))
}
