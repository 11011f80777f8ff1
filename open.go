package gdsc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// SplitGoogleStoragePath splits gs://bucket/path/to/object into its bucket and
// object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// Open opens path for reading, decompressing it if it carries a known
// compression signature. If client is non-nil and path begins with gs://, the
// object is streamed from Google Storage; otherwise path is treated as a local
// file (with ~ expanded).
func Open(path string, client *storage.Client) (io.ReadCloser, error) {
	var src io.ReadCloser

	if client != nil && strings.HasPrefix(path, "gs://") {
		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(context.Background())
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}
		src = rdr
	} else {
		f, err := os.Open(ExpandHome(path))
		if err != nil {
			return nil, err
		}
		src = f
	}

	r, _, err := MaybeDecompress(src)
	if err != nil {
		src.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return &readCloserFaker{Reader: r, closer: src.Close}, nil
}

// Create opens path for writing. Paths beginning with gs:// are written to
// Google Storage when client is non-nil; the object is only finalized once
// Close returns without error.
func Create(path string, client *storage.Client) (io.WriteCloser, error) {
	if client != nil && strings.HasPrefix(path, "gs://") {
		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		return client.Bucket(bucketName).Object(pathName).NewWriter(context.Background()), nil
	}

	return os.Create(ExpandHome(path))
}
