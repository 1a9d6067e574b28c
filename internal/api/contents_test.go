package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UploadContent(t *testing.T) {
	t.Run("sends the file as multipart field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/contents/upload", r.URL.Path)
			assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
			assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()

			assert.Equal(t, "sketch.png", header.Filename)
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, []byte("png-bytes"), data)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"file_path":"uploads/sketch.png","content_id":7}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, "T1", nil)
		resp, err := client.UploadContent(context.Background(), "/tmp/sketch.png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "uploads/sketch.png", resp.FilePath)
		assert.Equal(t, int64(7), resp.ContentID)
	})

	t.Run("surfaces the backend detail on rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"file too large"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL, "T1", nil)
		_, err := client.UploadContent(context.Background(), "big.png", strings.NewReader("x"))
		require.Error(t, err)
		assert.Equal(t, "file too large", err.Error())
	})

	t.Run("401 applies the expiry policy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		expiredCalls := 0
		client := newTestClient(server.URL, "stale", func() { expiredCalls++ })

		_, err := client.UploadContent(context.Background(), "a.png", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, 1, expiredCalls)
	})
}

func TestClient_GenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contents/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "summer beer promotion", req.AdDescription)
		assert.Equal(t, "a cold beer on a beach", req.ImagePrompt)
		assert.Equal(t, int64(3), req.ProjectID)
		require.NotNil(t, req.Seed)
		assert.Equal(t, int64(12345), *req.Seed)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "generated",
			"image_path": "outputs/result.png",
			"content_id": 42,
			"generation_time": 15,
			"optimized_prompt": "A cinematic shot of a cold beer",
			"ad_copy": "Cool off with a cold one"
		}`))
	}))
	defer server.Close()

	seed := int64(12345)
	client := newTestClient(server.URL, "T1", nil)
	resp, err := client.GenerateContent(context.Background(), GenerateRequest{
		AdDescription: "summer beer promotion",
		ImagePrompt:   "a cold beer on a beach",
		Seed:          &seed,
		ProjectID:     3,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.ContentID)
	assert.Equal(t, "Cool off with a cold one", resp.AdCopy)
	assert.Equal(t, 15, resp.GenerationTime)
}

func TestClient_ListContents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contents/", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("project_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"project_id":9,"type":"image_gen","is_success":true}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "T1", nil)
	contents, err := client.ListContents(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, ContentTypeImageGen, contents[0].Type)
}

func TestClient_DownloadContentImage(t *testing.T) {
	t.Run("streams bytes with the bearer header", func(t *testing.T) {
		image := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/contents/42/image", r.URL.Path)
			assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(image)
		}))
		defer server.Close()

		var buf bytes.Buffer
		client := newTestClient(server.URL, "T1", nil)
		n, err := client.DownloadContentImage(context.Background(), 42, &buf)
		require.NoError(t, err)
		assert.Equal(t, int64(len(image)), n)
		assert.Equal(t, image, buf.Bytes())
	})

	t.Run("401 applies the expiry policy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		expiredCalls := 0
		client := newTestClient(server.URL, "stale", func() { expiredCalls++ })

		var buf bytes.Buffer
		_, err := client.DownloadContentImage(context.Background(), 42, &buf)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, 1, expiredCalls)
		assert.Zero(t, buf.Len())
	})
}
