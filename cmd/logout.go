package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/store"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
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

		// best effort: the local session clears even if the server
		// call fails
		client := api.New(cfg.APIBase, api.WithTokenSource(session))
		if err := client.Logout(cmd.Context()); err != nil {
			fmt.Println("Server logout failed:", err)
		}

		if err := session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}
