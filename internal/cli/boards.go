package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brainboard/pkg/layer"
)

// boardCommand creates the board command group.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage saved boards",
	}
	cmd.AddCommand(c.boardListCommand())
	cmd.AddCommand(c.boardShowCommand())
	cmd.AddCommand(c.boardNewCommand())
	cmd.AddCommand(c.boardDeleteCommand())
	return cmd
}

func (c *CLI) boardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			ids, err := reg.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("No boards yet")
				printNextStep("Create one", appName+" board new <id>")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func (c *CLI) boardShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <board>",
		Short: "Print a board's layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			b, err := reg.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			snap := b.Snapshot()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			printBoardSummary(b.ID(), snap)
			if snap.Len() > 0 {
				renderLayerTable(os.Stdout, snap)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored document")
	return cmd
}

func (c *CLI) boardNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <board>",
		Short: "Create an empty board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			if _, err := reg.Create(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Created board %s", args[0])
			printNextStep("Add a template", appName+" template generate "+args[0]+" combinaison")
			return nil
		},
	}
}

func (c *CLI) boardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.openRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted board %s", args[0])
			return nil
		},
	}
}

func printBoardSummary(id string, snap layer.Snapshot) {
	printKeyValue("Board", id)
	printKeyValue("Layers", fmt.Sprintf("%d/%d", snap.Len(), layer.MaxLayers))
	for _, r := range layer.Roles() {
		if n := snap.Count(r); n > 0 {
			printDetail("%-20s %d", r, n)
		}
	}
}
