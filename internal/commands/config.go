package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runShowConfig,
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	RunE:  runInitConfig,
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)

	initConfigCmd.Flags().StringVar(&configInitPath, "path", "config.yaml", "where to write the config file")
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

const defaultConfig = `# vlanreg configuration

server:
  host: 0.0.0.0
  port: 5000
  read_timeout: 15s
  write_timeout: 15s
  shutdown_timeout: 10s
  body_limit: 64K
  debug: false

registry:
  # accepted VLAN IDs, must stay within 2-4094
  min_id: 2
  max_id: 4094

logging:
  level: info
  format: json

security:
  rate_limit: 0
  allowed_origins:
    - "*"
`

func runInitConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configInitPath); err == nil {
		return fmt.Errorf("%s already exists", configInitPath)
	}

	if err := os.WriteFile(configInitPath, []byte(defaultConfig), 0644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", configInitPath)
	return nil
}
