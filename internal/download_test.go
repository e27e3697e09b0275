package internal

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadFile(t *testing.T) {
	content := []byte("the quick brown fox")
	sha256Digest := fmt.Sprintf("%x", sha256.Sum256(content))
	sha512Digest := fmt.Sprintf("%x", sha512.Sum512(content))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write(content) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		name     string
		path     string
		checksum string
		wantErr  require.ErrorAssertionFunc
	}{
		{
			name: "no checksum",
			path: "/ok",
		},
		{
			name:     "valid sha512 checksum",
			path:     "/ok",
			checksum: "sha512:" + sha512Digest,
		},
		{
			name:     "bare checksum treated as sha256",
			path:     "/ok",
			checksum: sha256Digest,
		},
		{
			name:     "xxh64 checksums are not verified on download",
			path:     "/ok",
			checksum: "xxh64:doesnotmatter",
		},
		{
			name:     "checksum mismatch",
			path:     "/ok",
			checksum: "sha512:deadbeef",
			wantErr:  require.Error,
		},
		{
			name:    "missing resource",
			path:    "/nope",
			wantErr: require.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == nil {
				tt.wantErr = require.NoError
			}

			localPath := filepath.Join(t.TempDir(), "out.bin")
			err := DownloadFile(context.Background(), server.URL+tt.path, localPath, tt.checksum)
			tt.wantErr(t, err)

			if err != nil {
				return
			}

			got, err := os.ReadFile(localPath)
			require.NoError(t, err)
			assert.Equal(t, content, got)
		})
	}
}

func TestDownloadURL_status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := DownloadURL(context.Background(), server.URL)
	require.Error(t, err)
}
