package ociresolve

import (
	"context"
	"fmt"

	"github.com/wasmctl/wasmctl/pkg/ociresolve/cachebackend"
)

// BuildRemoteBackend constructs the configured remote cache tier. An empty
// kind means no remote tier is configured and is not an error: the local
// on-disk cache is always used regardless.
func BuildRemoteBackend(ctx context.Context, kind string, options map[string]string) (cachebackend.Backend, error) {
	switch kind {
	case "":
		return nil, nil
	case "s3":
		return cachebackend.NewS3Backend(ctx, options)
	case "azure":
		return cachebackend.NewAzureBackend(options)
	case "gcs":
		return cachebackend.NewGCSBackend(ctx, options)
	default:
		return nil, fmt.Errorf("unknown cache_backend kind %q (want s3, azure, or gcs)", kind)
	}
}
