package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bytetechedu/bytetech/internal/api"
)

// supportCmd sends a support request to the platform team.
var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Send a message to platform support",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig(cmd)

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		issue, _ := cmd.Flags().GetString("issue")
		message, _ := cmd.Flags().GetString("message")

		client := api.New(cfg.APIBase)
		err := client.SendSupport(cmd.Context(), api.SupportRequest{
			Name:    name,
			Mail:    email,
			Issue:   issue,
			Message: message,
		})
		if err != nil {
			return err
		}
		fmt.Println("Support request sent.")
		return nil
	},
}

func init() {
	supportCmd.Flags().String("name", "", "Your name")
	supportCmd.Flags().String("email", "", "Your email address")
	supportCmd.Flags().String("issue", "", "Short issue summary")
	supportCmd.Flags().String("message", "", "Full description")
	_ = supportCmd.MarkFlagRequired("name")
	_ = supportCmd.MarkFlagRequired("email")
	_ = supportCmd.MarkFlagRequired("issue")
	_ = supportCmd.MarkFlagRequired("message")
}
