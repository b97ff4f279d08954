package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/invbackoffice/internal/admin"
	"github.com/JonMunkholm/invbackoffice/internal/core"
	"github.com/JonMunkholm/invbackoffice/internal/view"
)

// catalogctl columns [module] [--client id] [--set a,b,c]
func newColumnsCmd(a *app) *cobra.Command {
	var client, set string

	cmd := &cobra.Command{
		Use:   "columns [module]",
		Short: "Show or change the visible columns of a module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module := core.ModuleProducts
			if len(args) == 1 {
				module = args[0]
			}

			pref, err := view.LoadColumnPreference(cmd.Context(), a.prefs, module, client)
			if err != nil {
				return userError(err)
			}

			if cmd.Flags().Changed("set") {
				var cols []string
				for _, c := range strings.Split(set, ",") {
					if c = strings.TrimSpace(c); c != "" {
						cols = append(cols, c)
					}
				}
				if err := pref.Set(cmd.Context(), cols); err != nil {
					return userError(err)
				}
			}

			out := cmd.OutOrStdout()
			for _, col := range pref.Available() {
				mark := " "
				if pref.IsVisible(col) {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %s\n", mark, col)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&client, "client", "cli", "client id for column preferences")
	cmd.Flags().StringVar(&set, "set", "", "comma-separated visible columns")
	return cmd
}

// catalogctl reset --yes
func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every product and vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset is destructive; pass --yes to confirm")
			}
			if err := admin.Reset(cmd.Context(), a.backend.Raw); err != nil {
				return fmt.Errorf("reset %s store: %w", a.backend.Driver, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s store\n", a.backend.Driver)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
