package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/store"
)

// loginCmd authenticates without launching the TUI, for scripted use.
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and persist the session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig(cmd)

		var email string
		if len(args) == 1 {
			email = args[0]
		} else {
			fmt.Print("Email: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			email = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer st.Close()

		session := auth.New(st)
		client := api.New(cfg.APIBase, api.WithTokenSource(session))

		resp, err := client.Login(cmd.Context(), api.LoginRequest{
			Email:    email,
			Password: string(pw),
		})
		if err != nil {
			return err
		}

		user := resp.User
		if err := session.Login(&user, resp.AccessToken); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}

		fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}
