package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the user's skill ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if !yes {
			return fmt.Errorf("refusing to reset %q without --yes", a.user)
		}
		if err := a.ledger.Reset(cmd.Context(), a.user); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Ledger for %s cleared.\n", a.user)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")
}
