// Package ociresolve implements the OCI resolver collaborator: given a
// component's configured source (local path, OCI reference, or git URL —
// exactly one set), it returns a local filesystem path to the component
// binary, pulling and caching as needed.
package ociresolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"

	"github.com/wasmctl/wasmctl/pkg/component"
	"github.com/wasmctl/wasmctl/pkg/gitsource"
	"github.com/wasmctl/wasmctl/pkg/ociresolve/cachebackend"
	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

const (
	mediaTypeWasmLayer = "application/vnd.wasm.content.layer.v1+wasm"
	mediaTypeWasmAlt   = "application/wasm"
)

// Resolver resolves component sources to local paths. Local cache entries,
// keyed by the sanitized OCI reference, are considered valid forever once
// written: there is no freshness check, even for tag references.
type Resolver struct {
	CacheDir string
	Auth     authn.Keychain
	Remote   cachebackend.Backend // optional shared cache tier
	git      *gitsource.Resolver
}

// New builds a Resolver rooted at cacheDir, using the default Docker-style
// credential keychain for registry auth.
func New(cacheDir string) *Resolver {
	return &Resolver{
		CacheDir: cacheDir,
		Auth:     authn.DefaultKeychain,
		git:      gitsource.New(cacheDir),
	}
}

// Resolve implements executor.SourceResolver: exactly one of
// cfg.Path/OCI/Git must be set.
func (r *Resolver) Resolve(ctx context.Context, cfg component.Config) (string, error) {
	switch {
	case cfg.Path != "":
		if _, err := os.Stat(cfg.Path); err != nil {
			return "", wasmerr.InvalidArguments(fmt.Sprintf("component path %q does not exist", cfg.Path)).WithDetail("path", cfg.Path)
		}
		return cfg.Path, nil
	case cfg.OCI != "":
		return r.resolveOCI(ctx, cfg.OCI)
	case cfg.Git != "":
		return r.git.Resolve(ctx, cfg.Git, "")
	default:
		return "", wasmerr.InvalidArguments("component config must set exactly one of path, oci, or git")
	}
}

func (r *Resolver) resolveOCI(ctx context.Context, reference string) (string, error) {
	cacheKey := sanitize(reference)
	cachePath := filepath.Join(r.CacheDir, "oci", cacheKey+".wasm")

	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if r.Remote != nil {
		if data, err := r.Remote.Get(ctx, cacheKey); err == nil {
			if err := writeCache(cachePath, data); err != nil {
				return "", wasmerr.Wrap(wasmerr.CodeIO, "failed to write local cache", err)
			}
			return cachePath, nil
		} else if !errors.Is(err, cachebackend.ErrNotFound) {
			return "", wasmerr.Wrap(wasmerr.CodeIO, "failed to query remote cache", err)
		}
	}

	data, err := r.pull(ctx, reference)
	if err != nil {
		return "", err
	}

	if err := writeCache(cachePath, data); err != nil {
		return "", wasmerr.Wrap(wasmerr.CodeIO, "failed to write local cache", err)
	}
	if r.Remote != nil {
		_ = r.Remote.Put(ctx, cacheKey, data)
	}
	return cachePath, nil
}

func (r *Resolver) pull(ctx context.Context, reference string) ([]byte, error) {
	ref, err := name.ParseReference(reference)
	if err != nil {
		return nil, wasmerr.InvalidArguments(fmt.Sprintf("invalid OCI reference %q", reference))
	}

	img, err := remote.Image(ref, remote.WithAuthFromKeychain(r.Auth), remote.WithContext(ctx))
	if err != nil {
		return nil, registryError(reference, err)
	}

	layers, err := img.Layers()
	if err != nil {
		return nil, wasmerr.Wrap(wasmerr.CodeComponent, "failed to read image layers", err)
	}

	for _, layer := range layers {
		mt, err := layer.MediaType()
		if err != nil {
			continue
		}
		if string(mt) != mediaTypeWasmLayer && string(mt) != mediaTypeWasmAlt {
			continue
		}
		rc, err := layer.Uncompressed()
		if err != nil {
			return nil, wasmerr.Wrap(wasmerr.CodeComponent, "failed to decompress wasm layer", err)
		}
		defer rc.Close()
		data := make([]byte, 0)
		buf := make([]byte, 32*1024)
		for {
			n, rerr := rc.Read(buf)
			if n > 0 {
				data = append(data, buf[:n]...)
			}
			if rerr != nil {
				break
			}
		}
		return data, nil
	}

	return nil, wasmerr.New(wasmerr.CodeComponent, fmt.Sprintf("no wasm layer found in %q", reference))
}

func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func sanitize(reference string) string {
	replacer := strings.NewReplacer("/", "_", ":", "_", "@", "_")
	return replacer.Replace(reference)
}

// registryError translates OCI registry errors into user-friendly
// messages, surfaced as wasmerr.CodeComponent per §7's "forwarded from
// collaborators" policy.
func registryError(reference string, err error) error {
	var transportErr *transport.Error
	if errors.As(err, &transportErr) {
		for _, diagnostic := range transportErr.Errors {
			switch diagnostic.Code {
			case transport.ManifestUnknownErrorCode:
				return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("artifact not found: %s does not exist or the tag is invalid", reference), err)
			case transport.NameUnknownErrorCode:
				return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("repository not found: %s", reference), err)
			case transport.UnauthorizedErrorCode:
				return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("authentication required to pull %s", reference), err)
			case transport.DeniedErrorCode:
				return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("access denied pulling %s", reference), err)
			}
		}
		if transportErr.StatusCode == http.StatusNotFound {
			return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("artifact not found: %s", reference), err)
		}
	}
	return wasmerr.Wrap(wasmerr.CodeComponent, fmt.Sprintf("failed to pull %s", reference), err)
}
