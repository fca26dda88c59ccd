package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	treeio "github.com/matzehuels/treeplot/pkg/io"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	src    sourceFlags
	output string
	format string
}

// exportCommand creates the export command, which writes a source
// snapshot to a tree file.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a tree snapshot to a JSON or TOML file",
		Example: `  treeplot export -o tree.toml
  treeplot export -s mongo:trees -o backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, &opts)
		},
	}

	opts.src.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout as JSON)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, toml (default: by extension)")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, opts *exportOpts) error {
	ctx := cmd.Context()

	src, err := c.openSource(ctx, opts.src.spec(c.config), opts.src.format)
	if err != nil {
		return err
	}
	defer src.Close()

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	t, err := runner.Fetch(ctx, src)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" && opts.output != "" {
		if format, err = treeio.FormatFromPath(opts.output); err != nil {
			return err
		}
	}
	if format == "" {
		format = treeio.FormatJSON
	}

	if opts.output == "" {
		return treeio.Write(t, os.Stdout, format)
	}
	data, err := treeio.Marshal(t, format)
	if err != nil {
		return err
	}
	if err := writeFile(opts.output, data); err != nil {
		return err
	}
	printSuccess("Exported %s", fmt.Sprintf("%d nodes", t.Len()))
	printFile(opts.output)
	return nil
}
