package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndPublicURL(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "https://cdn.example.com/")
	require.NoError(t, err)

	path := ShipmentAssetPath("ST-ABC123", "sender-id", "png")
	url, err := store.Save(AssetBucket, path, []byte("fake-png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/assets/shiptrack-assets/shipments/ST-ABC123/sender-id.png", url)

	data, err := os.ReadFile(filepath.Join(store.Root(), AssetBucket, "shipments", "ST-ABC123", "sender-id.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png"), data)
}

func TestSaveOverwrites(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	path := ShipmentAssetPath("ST-XYZ", "parcel", "jpg")
	_, err = store.Save(AssetBucket, path, []byte("first"))
	require.NoError(t, err)
	_, err = store.Save(AssetBucket, path, []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(store.Root(), AssetBucket, "shipments", "ST-XYZ", "parcel.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	_, err = store.Save(AssetBucket, "../../etc/passwd", []byte("nope"))
	assert.Error(t, err)
}

func TestShipmentAssetPath(t *testing.T) {
	assert.Equal(t, "shipments/ST-1/parcel.jpg", ShipmentAssetPath("ST-1", "parcel", ""))
	assert.Equal(t, "shipments/ST-1/receiver-id.jpeg", ShipmentAssetPath("ST-1", "receiver-id", ".JPEG"))
}
