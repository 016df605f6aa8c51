package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outfitly/outfitly-cli/organizations"
	"github.com/outfitly/outfitly-cli/session"
)

func (a *App) orgsCommand() *cobra.Command {
	parent := &cobra.Command{
		Use:   "orgs",
		Short: "Administer organizations (admin accounts)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireRole(session.RoleAdmin)
		},
	}
	parent.AddCommand(a.orgsListCommand(), a.orgsCreateCommand())
	return parent
}

func (a *App) orgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.orgs.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No organizations found")
				return nil
			}
			for _, org := range list {
				fmt.Fprintf(a.out, "%s  %s  %s\n", org.ID, org.Name, org.Email)
			}
			return nil
		},
	}
}

func (a *App) orgsCreateCommand() *cobra.Command {
	var draft organizations.Draft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			org, err := a.orgs.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created organization %s (%s)\n", org.Name, org.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "organization name")
	cmd.Flags().StringVar(&draft.Email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
