package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/store"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig(cmd)

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer st.Close()

		session, err := auth.Restore(st)
		if err != nil {
			return err
		}
		if !session.LoggedIn() {
			fmt.Println("Not logged in.")
			return nil
		}

		// confirm against the server so a revoked token is reported
		client := api.New(cfg.APIBase, api.WithTokenSource(session))
		user, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}

		role := "student"
		if user.IsSensei {
			role = "sensei"
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, role)
		return nil
	},
}
