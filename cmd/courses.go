package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/store"
)

// coursesCmd prints the catalog without launching the TUI.
var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig(cmd)

		mine, _ := cmd.Flags().GetBool("mine")

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
		client := api.New(cfg.APIBase, api.WithTokenSource(session))

		var courses []api.Course
		if mine {
			if !session.LoggedIn() {
				return fmt.Errorf("not logged in; run: bytetech login")
			}
			courses, err = client.MyCourses(cmd.Context())
		} else {
			courses, err = client.Catalog(cmd.Context())
		}
		if err != nil {
			if api.IsNotFound(err) {
				fmt.Println("No courses.")
				return nil
			}
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSENSEI\tPRICE\tHOURS")
		for _, c := range courses {
			fmt.Fprintf(w, "%d\t%s\t%s\t$%.2f\t%.1f\n", c.ID, c.Name, c.SenseiName, c.Price, c.Hours)
		}
		return w.Flush()
	},
}

func init() {
	coursesCmd.Flags().Bool("mine", false, "List only purchased courses")
}
