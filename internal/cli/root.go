// Package cli implements the wasmctl command-line front end: a thin
// wrapper for local testing of the bridge without a full MCP client.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wasmctl",
	Short: "Expose WebAssembly component exports as MCP tools",
	Long: `wasmctl bridges WebAssembly Component-Model exports to the Model
Context Protocol: it loads components described in a configuration file,
advertises their exported functions as JSON-addressable tools, and executes
them with marshalled arguments inside a per-call sandbox.

Examples:
  wasmctl list-tools -f wasmctl.yaml
  wasmctl call math.add '{"a":2,"b":3}' -f wasmctl.yaml
  wasmctl serve -f wasmctl.yaml`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "CLI preference file (default is $HOME/.wasmctl/config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "wasmctl.yaml", "component configuration document")
	rootCmd.PersistentFlags().String("cache-dir", "", "component cache directory (default $XDG_CACHE_HOME/wasmctl)")

	viper.SetEnvPrefix("WASMCTL")
	viper.AutomaticEnv()

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListToolsCmd())
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newConfigCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.wasmctl")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	_ = viper.ReadInConfig()
}
