package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evalgo.org/vlanreg/internal/registry"
	"evalgo.org/vlanreg/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a VLAN create payload",
	Long: `Check a POST /vlans JSON payload offline against the configured
VLAN ID range.

Examples:
  vlanreg validate vlan.json
  vlanreg validate vlan.json --config /etc/vlanreg/config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	out := cmd.OutOrStdout()

	req, err := registry.DecodeCreateRequest(data)
	if err != nil {
		fmt.Fprintln(out, "✗ Validation failed:")
		fmt.Fprintf(out, "  - %v\n", err)
		return fmt.Errorf("validation failed")
	}

	result := validation.New(cfg.Registry.MinID, cfg.Registry.MaxID).Struct(req)
	if result.Valid {
		fmt.Fprintln(out, "✓ Payload is valid")
		return nil
	}

	fmt.Fprintln(out, "✗ Validation failed:")
	for _, e := range result.Errors {
		if e.Value != nil {
			fmt.Fprintf(out, "  - %s: %s (value: %v)\n", e.Field, e.Message, e.Value)
		} else {
			fmt.Fprintf(out, "  - %s: %s\n", e.Field, e.Message)
		}
	}

	return fmt.Errorf("validation failed")
}
