// Package storage keeps uploaded shipment assets on local disk under a
// bucket/path layout and hands back public URLs served by the static
// asset mount.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AssetBucket is the single bucket shipment photos live in.
const AssetBucket = "shiptrack-assets"

type DiskStore struct {
	root          string
	publicBaseURL string
}

func NewDiskStore(root, publicBaseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create asset root: %w", err)
	}
	return &DiskStore{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Root is the directory the static file route serves.
func (s *DiskStore) Root() string {
	return s.root
}

// Save writes an object and returns its public URL. Re-uploading the same
// path overwrites (upsert semantics, matching retaken photos).
func (s *DiskStore) Save(bucket, objectPath string, data []byte) (string, error) {
	cleaned, err := s.cleanPath(bucket, objectPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cleaned), 0o755); err != nil {
		return "", fmt.Errorf("create asset dir: %w", err)
	}
	if err := os.WriteFile(cleaned, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}

	return s.PublicURL(bucket, objectPath), nil
}

// PublicURL derives the externally reachable URL of an object.
func (s *DiskStore) PublicURL(bucket, objectPath string) string {
	return s.publicBaseURL + "/assets/" + bucket + "/" + strings.TrimLeft(objectPath, "/")
}

// ShipmentAssetPath follows the shipments/<tracking>/<suffix>.<ext>
// convention shared with the original clients.
func ShipmentAssetPath(trackingCode, suffix, extension string) string {
	extension = strings.TrimLeft(strings.ToLower(extension), ".")
	if extension == "" {
		extension = "jpg"
	}
	return fmt.Sprintf("shipments/%s/%s.%s", trackingCode, suffix, extension)
}

func (s *DiskStore) cleanPath(bucket, objectPath string) (string, error) {
	joined := filepath.Join(s.root, bucket, filepath.FromSlash(objectPath))
	cleaned := filepath.Clean(joined)
	if !strings.HasPrefix(cleaned, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("asset path %q escapes the store root", objectPath)
	}
	return cleaned, nil
}
