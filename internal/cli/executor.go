package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wasmctl/wasmctl/pkg/config"
	"github.com/wasmctl/wasmctl/pkg/executor"
	"github.com/wasmctl/wasmctl/pkg/host"
	"github.com/wasmctl/wasmctl/pkg/ociresolve"
)

// buildExecutor loads the configuration document named by the command's
// "file" flag and catalogs every component it describes, the same setup
// every subcommand needs before it can list or call tools.
func buildExecutor(ctx context.Context, cmd *cobra.Command) (*executor.Executor, *config.Document, error) {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, nil, err
	}
	doc, err := config.Load(filePath)
	if err != nil {
		return nil, nil, err
	}

	cacheDirFlag, _ := cmd.Flags().GetString("cache-dir")
	cacheDir, err := resolveCacheDir(cacheDirFlag)
	if err != nil {
		return nil, nil, err
	}

	resolver := ociresolve.New(cacheDir)
	if doc.CacheBackend != nil {
		backend, err := ociresolve.BuildRemoteBackend(ctx, doc.CacheBackend.Kind, doc.CacheBackend.Options)
		if err != nil {
			return nil, nil, fmt.Errorf("configuring cache_backend: %w", err)
		}
		resolver.Remote = backend
	}

	exec := executor.New(host.Unbound{}, resolver)
	if viper.GetBool("debug") {
		exec.SetDebugWriter(cmd.ErrOrStderr())
	}

	for name, cc := range doc.Components {
		if err := exec.AddComponent(ctx, name, cc.ToComponentConfig()); err != nil {
			return nil, nil, fmt.Errorf("loading component %q: %w", name, err)
		}
	}

	return exec, doc, nil
}
