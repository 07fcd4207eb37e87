package storage

import (
	"connectfitness/coach-api/internal/config"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestEndpointURL(t *testing.T) {
	cases := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"", true, ""},
		{"minio:9000", false, "http://minio:9000"},
		{"nyc3.digitaloceanspaces.com", true, "https://nyc3.digitaloceanspaces.com"},
		{"http://localhost:9000", true, "http://localhost:9000"},
	}
	for _, tc := range cases {
		if got := endpointURL(tc.endpoint, tc.ssl); got != tc.want {
			t.Errorf("endpointURL(%q, %v) = %q, want %q", tc.endpoint, tc.ssl, got, tc.want)
		}
	}
}

func TestPresignedURLsUseCustomEndpoint(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		BucketName:      "videos",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}

	put, err := fs.GeneratePresignedUploadURL(context.Background(), "exercise-videos/c1/a.mp4", "video/mp4", 5*time.Minute)
	if err != nil {
		t.Fatalf("presign PUT: %v", err)
	}
	u, err := url.Parse(put)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "localhost:9000" || u.Path != "/videos/exercise-videos/c1/a.mp4" {
		t.Errorf("PUT URL = %s, want path-style URL on the custom endpoint", put)
	}
	if u.Query().Get("X-Amz-Expires") != "300" || u.Query().Get("X-Amz-Signature") == "" {
		t.Errorf("PUT URL is not a signed 5 minute URL: %s", put)
	}

	get, err := fs.GeneratePresignedDownloadURL(context.Background(), "exercise-videos/c1/a.mp4", 0)
	if err != nil {
		t.Fatalf("presign GET: %v", err)
	}
	if !strings.Contains(get, "X-Amz-Expires=900") {
		t.Errorf("GET URL should default to 15 minutes: %s", get)
	}
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	if _, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"}, zap.NewNop()); err == nil {
		t.Fatal("expected error without bucket")
	}
}
