package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/babylonlabs-io/vesting-engine/pkg"
	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName = "config.yml"
	// configPathEnv overrides the default of the --config flag
	configPathEnv = "VESTING_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:          "vesting-engine",
		Short:        "Token vesting pools, grants and claims",
		SilenceUsage: true,
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(DeriveIDsCmd())
	rootCmd.AddCommand(GrantStatusCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
