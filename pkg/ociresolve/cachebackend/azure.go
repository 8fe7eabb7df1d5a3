package cachebackend

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureBackend caches pulled component binaries in Azure Blob Storage.
type AzureBackend struct {
	client    *azblob.Client
	container string
	prefix    string
}

// NewAzureBackend builds an AzureBackend from the given config map
// (storage_account_name, container_name, access_key, prefix). Falls back
// to DefaultAzureCredential when access_key is unset.
func NewAzureBackend(cfg map[string]string) (*AzureBackend, error) {
	account := cfg["storage_account_name"]
	container := cfg["container_name"]
	if account == "" || container == "" {
		return nil, fmt.Errorf("azure cache backend requires 'storage_account_name' and 'container_name'")
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", account)

	var client *azblob.Client
	var err error
	if accessKey := cfg["access_key"]; accessKey != "" {
		cred, cerr := azblob.NewSharedKeyCredential(account, accessKey)
		if cerr != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", cerr)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	} else {
		cred, cerr := azidentity.NewDefaultAzureCredential(nil)
		if cerr != nil {
			return nil, fmt.Errorf("failed to create default Azure credential: %w", cerr)
		}
		client, err = azblob.NewClient(serviceURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	return &AzureBackend{client: client, container: container, prefix: cfg["prefix"]}, nil
}

func (b *AzureBackend) key(digest string) string {
	return path.Join(b.prefix, digest)
}

func (b *AzureBackend) Get(ctx context.Context, digest string) ([]byte, error) {
	blobPath := b.key(digest)
	resp, err := b.client.DownloadStream(ctx, b.container, blobPath, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read azure://%s/%s: %w", b.container, blobPath, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (b *AzureBackend) Put(ctx context.Context, digest string, data []byte) error {
	blobPath := b.key(digest)
	contentType := "application/wasm"
	_, err := b.client.UploadBuffer(ctx, b.container, blobPath, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return fmt.Errorf("failed to write azure://%s/%s: %w", b.container, blobPath, err)
	}
	return nil
}
