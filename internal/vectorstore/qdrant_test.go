package vectorstore

import (
	"net/url"
	"strconv"
	"testing"
)

// TestQdrantURLParsing exercises the URL parsing logic NewQdrantStore relies
// on without opening a real client connection.
func TestQdrantURLParsing(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantHost string
		wantPort int
	}{
		{
			name:     "default URL",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334, // gRPC port is HTTP port + 1
		},
		{
			name:     "custom port",
			urlStr:   "http://qdrant.internal:9000",
			wantHost: "qdrant.internal",
			wantPort: 9001,
		},
		{
			name:     "no port falls back to gRPC default",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "no hostname defaults to localhost",
			urlStr:   "http://:6333",
			wantHost: "localhost",
			wantPort: 6334,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsedURL, err := url.Parse(tt.urlStr)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			host := parsedURL.Hostname()
			if host == "" {
				host = "localhost"
			}
			port := 6334
			if parsedURL.Port() != "" {
				if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
					port = httpPort + 1
				}
			}

			if host != tt.wantHost {
				t.Errorf("host = %v, want %v", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("port = %v, want %v", port, tt.wantPort)
			}
		})
	}
}

func TestCollectionConstant(t *testing.T) {
	// The collection identity is fixed per deployment.
	if Collection != "drive_docs" {
		t.Errorf("Collection = %q, want drive_docs", Collection)
	}
}
