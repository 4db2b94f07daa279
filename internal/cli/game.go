package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Whole-game maintenance commands",
	}

	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameExportCmd())
	cmd.AddCommand(newGameImportCmd())

	return cmd
}

func newGameResetCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all players and actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("pass --yes to confirm the reset")
			}

			if err := client.Post("/api/v1/game/reset", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the reset")

	return cmd
}

func newGameExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full game state as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.GetRaw("/api/v1/game/export")
			if err != nil {
				return err
			}

			if file == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(file, data, 0o600); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Exported to " + file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the export to a file instead of stdout")

	return cmd
}

func newGameImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the game state from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if err := client.PostRaw("/api/v1/game/import", data, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Import complete")
			return nil
		},
	}

	return cmd
}
