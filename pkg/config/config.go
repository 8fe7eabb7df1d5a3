// Package config loads the YAML configuration document that describes
// which components to load and how to sandbox them — the configuration
// collaborator referenced throughout the core (spec §6).
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/wasmctl/wasmctl/pkg/component"
	"github.com/wasmctl/wasmctl/pkg/sandbox"
	"github.com/wasmctl/wasmctl/pkg/wasmerr"
)

// VolumeMount mirrors sandbox.VolumeMount with the mapstructure tags viper
// decodes the YAML document through.
type VolumeMount struct {
	HostPath  string `mapstructure:"host_path"`
	GuestPath string `mapstructure:"guest_path"`
	ReadOnly  bool   `mapstructure:"read_only"`
}

// ComponentConfig is the on-disk shape of one component's configuration
// entry.
type ComponentConfig struct {
	Path        string            `mapstructure:"path"`
	OCI         string            `mapstructure:"oci"`
	Git         string            `mapstructure:"git"`
	Description string            `mapstructure:"description"`
	Cwd         string            `mapstructure:"cwd"`
	Env         map[string]string `mapstructure:"env"`
	Volumes     []VolumeMount     `mapstructure:"volumes"`
}

// PromptConfig is a passthrough prompt record (spec §6).
type PromptConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Content     string `mapstructure:"content"`
}

// CacheBackendConfig selects and configures the optional shared cache tier
// pulled OCI component binaries are mirrored to/from. Kind is one of "s3",
// "azure", "gcs"; Options holds the backend-specific keys each constructor
// in pkg/ociresolve/cachebackend documents (bucket, container_name, etc.).
// Leaving this unset (the zero Document) keeps the local-disk cache only.
type CacheBackendConfig struct {
	Kind    string            `mapstructure:"kind"`
	Options map[string]string `mapstructure:"options"`
}

// Document is the full parsed configuration file.
type Document struct {
	Components   map[string]ComponentConfig `mapstructure:"components"`
	Prompts      []PromptConfig             `mapstructure:"prompts"`
	CacheBackend *CacheBackendConfig        `mapstructure:"cache_backend"`
}

// Load reads and parses a YAML configuration file at path using viper, the
// same library the CLI's own preference file uses.
func Load(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, wasmerr.Wrap(wasmerr.CodeIO, fmt.Sprintf("config file %q not found", path), err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, wasmerr.Wrap(wasmerr.CodeIO, fmt.Sprintf("failed to read config %q", path), err)
	}

	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, wasmerr.Wrap(wasmerr.CodeJSON, "failed to decode config document", err)
	}
	return &doc, nil
}

// ToComponentConfig converts the on-disk shape into the canonical
// component.Config the Executor consumes.
func (c ComponentConfig) ToComponentConfig() component.Config {
	volumes := make([]sandbox.VolumeMount, 0, len(c.Volumes))
	for _, v := range c.Volumes {
		volumes = append(volumes, sandbox.VolumeMount{
			HostPath:  v.HostPath,
			GuestPath: v.GuestPath,
			ReadOnly:  v.ReadOnly,
		})
	}
	return component.Config{
		Path:        c.Path,
		OCI:         c.OCI,
		Git:         c.Git,
		Cwd:         c.Cwd,
		Volumes:     volumes,
		Env:         c.Env,
		Description: c.Description,
	}
}
