// Package archive uploads CSV exports to a Supabase Storage bucket.
package archive

import (
	"bytes"
	"fmt"

	storage "github.com/supabase-community/storage-go"
)

type Client struct {
	client  *storage.Client
	bucket  string
	baseURL string
	prefix  string
}

func NewClient(supabaseURL, apiKey, bucket, prefix string) (*Client, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", apiKey, nil)

	return &Client{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		prefix:  prefix,
	}, nil
}

// UploadCSV stores an export under the configured prefix and returns the
// storage path and public URL.
func (c *Client) UploadCSV(filename string, data []byte) (string, string, error) {
	storagePath := fmt.Sprintf("%s/%s", c.prefix, filename)

	contentType := "text/csv"
	upsert := true
	_, err := c.client.UploadFile(c.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload export: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, c.bucket, storagePath)

	return storagePath, publicURL, nil
}

// GetPublicURL rebuilds the public URL for an existing storage path.
func (c *Client) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, c.bucket, storagePath)
}

// DeleteExport removes an archived export.
func (c *Client) DeleteExport(storagePath string) error {
	_, err := c.client.RemoveFile(c.bucket, []string{storagePath})
	return err
}
