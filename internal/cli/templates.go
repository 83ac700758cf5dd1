package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brainboard/pkg/board"
	"github.com/matzehuels/brainboard/pkg/geometry"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/template"
)

// templateCommand creates the template command group.
func (c *CLI) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate and arrange template boards",
		Long: fmt.Sprintf(`Generate and arrange template boards.

Templates: %s`, strings.Join(template.Names(), ", ")),
	}
	cmd.AddCommand(c.templateActionCommand("generate", "Add a template's scaffold and arrange the cards", (*board.Board).Generate))
	cmd.AddCommand(c.templateActionCommand("reflow", "Re-pack the cards of a template", (*board.Board).Reflow))
	cmd.AddCommand(c.templateActionCommand("add-row", "Extend a template by one row", (*board.Board).AddRow))
	return cmd
}

type boardAction func(b *board.Board, ctx context.Context, user, name string) (layer.Batch, error)

func (c *CLI) templateActionCommand(use, short string, action boardAction) *cobra.Command {
	return &cobra.Command{
		Use:       use + " <board> <template>",
		Short:     short,
		Args:      cobra.ExactArgs(2),
		ValidArgs: template.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg, err := c.openRegistry(ctx)
			if err != nil {
				return err
			}
			defer reg.Close()

			b, err := reg.Open(ctx, args[0])
			if err != nil {
				return err
			}
			ctx = withBoard(ctx, b.ID())
			prog := newProgress(ctx)
			ops, err := action(b, ctx, cliUser, args[1])
			if err != nil {
				return err
			}
			prog.done(use, "template", args[1], "ops", len(ops))
			if len(ops) == 0 {
				printInfo("Nothing to change")
				return nil
			}
			printSuccess("Applied %d operations to %s", len(ops), b.ID())
			if created := ops.Creates(); len(created) > 0 {
				printDetail("%d layers created", len(created))
			}
			return nil
		},
	}
}

// insertCommand creates a single layer, like releasing the pointer in
// insert mode.
func (c *CLI) insertCommand() *cobra.Command {
	var fill string
	cmd := &cobra.Command{
		Use:   "insert <board> <role> <x> <y>",
		Short: "Insert a 100×100 layer",
		Long: `Insert a 100×100 layer of the given role at (x, y).

Roles are given by name (idea-card) or code (1).`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := layer.ParseRole(args[1])
			if err != nil {
				return err
			}
			var p geometry.Point
			if _, err := fmt.Sscan(args[2], &p.X); err != nil {
				return fmt.Errorf("x: %w", err)
			}
			if _, err := fmt.Sscan(args[3], &p.Y); err != nil {
				return fmt.Errorf("y: %w", err)
			}

			ctx := cmd.Context()
			reg, err := c.openRegistry(ctx)
			if err != nil {
				return err
			}
			defer reg.Close()

			b, err := reg.Open(ctx, args[0])
			if err != nil {
				return err
			}
			if fill != "" {
				col, err := parseColor(fill)
				if err != nil {
					return err
				}
				b.SetLastFill(col)
			}
			ctx = withBoard(ctx, b.ID())
			id, err := b.Insert(ctx, cliUser, role, p)
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("inserted layer", "role", role, "x", p.X, "y", p.Y, "id", id)
			if id == "" {
				printError("Board %s is full (%d layers)", b.ID(), layer.MaxLayers)
				return nil
			}
			printSuccess("Inserted %s %s", role, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&fill, "fill", "", "fill colour as r,g,b (default white)")
	return cmd
}

// parseColor parses "r,g,b".
func parseColor(s string) (layer.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return layer.Color{}, fmt.Errorf("invalid colour %q: want r,g,b", s)
	}
	return layer.Color{R: r, G: g, B: b}, nil
}
