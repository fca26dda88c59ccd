package cli

import (
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/source"
)

// seedOpts holds the command-line flags for the seed command.
type seedOpts struct {
	src sourceFlags
}

// seedCommand creates the seed command, which stores a snapshot in a
// writable source.
func (c *CLI) seedCommand() *cobra.Command {
	var opts seedOpts

	cmd := &cobra.Command{
		Use:   "seed redis[:KEY]|mongo[:COLLECTION]|file:PATH",
		Short: "Store a tree snapshot in a backend",
		Long: `Seed reads a tree from --source (the sample by default) and replaces the
snapshot stored in the target backend. The target is then usable as a
source for render, show and inspect.`,
		Example: `  treeplot seed redis
  treeplot seed mongo:trees -s tree.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSeed(cmd, args[0], &opts)
		},
	}

	opts.src.register(cmd)
	return cmd
}

func (c *CLI) runSeed(cmd *cobra.Command, target string, opts *seedOpts) error {
	ctx := cmd.Context()

	spec, err := source.ParseSpec(target)
	if err != nil {
		return err
	}
	if spec.Kind == source.KindSample {
		return perrors.New(perrors.ErrCodeInvalidInput, "seed target must be redis, mongo or a file, got %q", target)
	}

	from, err := c.openSource(ctx, opts.src.spec(c.config), opts.src.format)
	if err != nil {
		return err
	}
	defer from.Close()

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	t, err := runner.Fetch(ctx, from)
	if err != nil {
		return err
	}

	to, err := c.openSource(ctx, target, "")
	if err != nil {
		return err
	}
	defer to.Close()

	saver, ok := to.(source.Saver)
	if !ok {
		return perrors.New(perrors.ErrCodeUnsupported, "source %s cannot store snapshots", spec)
	}
	if err := saver.Save(ctx, t); err != nil {
		return err
	}

	printSuccess("Seeded %s with %d nodes", spec, t.Len())
	printNextStep("Render it", "treeplot render -s "+spec.String())
	return nil
}
