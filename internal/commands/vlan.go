package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"evalgo.org/vlanreg/models"
	"evalgo.org/vlanreg/pkg/vlanreg/client"
)

var (
	serverURL    string
	outputFormat string
	vlanName     string
)

var vlanCmd = &cobra.Command{
	Use:   "vlan",
	Short: "Manage VLANs on a running server",
}

var vlanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered VLANs",
	Long: `List every VLAN registered on the server, ordered by ID.

Examples:
  vlanreg vlan list
  vlanreg vlan list -o yaml
  vlanreg vlan list --server http://vlanreg.internal:5000`,
	Args: cobra.NoArgs,
	RunE: runVLANList,
}

var vlanGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a single VLAN",
	Args:  cobra.ExactArgs(1),
	RunE:  runVLANGet,
}

var vlanCreateCmd = &cobra.Command{
	Use:   "create [id]",
	Short: "Register a VLAN",
	Long: `Register a VLAN ID. Without --name the server assigns VLAN_<id>.

Examples:
  vlanreg vlan create 100
  vlanreg vlan create 200 --name voice`,
	Args: cobra.ExactArgs(1),
	RunE: runVLANCreate,
}

var vlanHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show server health",
	Args:  cobra.NoArgs,
	RunE:  runVLANHealth,
}

func init() {
	vlanCmd.AddCommand(vlanListCmd)
	vlanCmd.AddCommand(vlanGetCmd)
	vlanCmd.AddCommand(vlanCreateCmd)
	vlanCmd.AddCommand(vlanHealthCmd)

	vlanCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (default: http://localhost:<server.port>)")
	vlanCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, yaml)")

	vlanCreateCmd.Flags().StringVar(&vlanName, "name", "", "VLAN name")
}

func newClient() (*client.Client, error) {
	url := serverURL
	if url == "" {
		url = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	return client.New(url)
}

func parseVLANID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid VLAN ID %q: must be an integer", arg)
	}
	return id, nil
}

func runVLANList(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	resp, err := c.List(cmd.Context())
	if err != nil {
		return err
	}

	return printVLANs(cmd.OutOrStdout(), resp, resp.VLANs)
}

func runVLANGet(cmd *cobra.Command, args []string) error {
	id, err := parseVLANID(args[0])
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	vlan, err := c.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	return printVLANs(cmd.OutOrStdout(), vlan, []models.VLAN{*vlan})
}

func runVLANCreate(cmd *cobra.Command, args []string) error {
	id, err := parseVLANID(args[0])
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	resp, err := c.Create(cmd.Context(), client.CreateRequest{ID: id, Name: vlanName})
	if err != nil {
		return err
	}

	if outputFormat == "table" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created VLAN %d (%s), %d registered\n",
			resp.VLAN.ID, resp.VLAN.Name, resp.TotalVLANs)
		return nil
	}
	return printVLANs(cmd.OutOrStdout(), resp, nil)
}

func runVLANHealth(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	health, err := c.Health(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json", "yaml":
		return encode(out, health)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Status:\t%s\n", health.Status)
	fmt.Fprintf(w, "Version:\t%s\n", health.Version)
	fmt.Fprintf(w, "VLANs:\t%d\n", health.TotalVLANs)
	fmt.Fprintf(w, "Heap:\t%s\n", humanize.IBytes(health.Memory.HeapAllocBytes))
	fmt.Fprintf(w, "Goroutines:\t%d\n", health.Memory.Goroutines)
	fmt.Fprintf(w, "Uptime:\t%s\n", health.Uptime)
	return w.Flush()
}

// printVLANs writes v as json/yaml, or the rows as a table.
func printVLANs(out io.Writer, v interface{}, rows []models.VLAN) error {
	switch outputFormat {
	case "json", "yaml":
		return encode(out, v)
	case "table":
	default:
		return fmt.Errorf("unknown output format: %s (use table, json or yaml)", outputFormat)
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, "No VLANs registered")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCREATED")
	for _, v := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", v.ID, v.Name, v.Status, humanize.RelTime(v.CreatedAt, now, "ago", "from now"))
	}
	return w.Flush()
}

func encode(out io.Writer, v interface{}) error {
	if outputFormat == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
