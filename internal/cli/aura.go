package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newAuraCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "aura <player-id> <change>",
		Short: "Apply an aura change to a player",
		Long: `Apply a positive or negative aura change to a player and record it in
the action log. Use -- before a negative change so it is not parsed as a
flag, e.g. "aura <id> -- -5".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			change, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}

			req := map[string]any{"change": change, "reason": reason}
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/aura", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the change")

	return cmd
}

func newActionsCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Show the action log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/actions"
			if playerID != "" {
				path = "/api/v1/players/" + playerID + "/actions"
			}

			var result []Action
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Limit to one player's actions")

	return cmd
}
