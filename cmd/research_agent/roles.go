package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/client-research/internal/roles"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles a briefing can be tailored to",
	RunE:  runRoles,
}

var rolesShowInstructions bool

func init() {
	rolesCmd.Flags().BoolVar(&rolesShowInstructions, "instructions", false, "Print each role's prompt instructions")
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, k := range roles.All() {
		_, _ = fmt.Fprintf(out, "%-24s %s\n", k, k.DisplayName())
		if rolesShowInstructions {
			_, _ = fmt.Fprintf(out, "\n%s\n\n", roles.Instructions(k))
		}
	}
	return nil
}
