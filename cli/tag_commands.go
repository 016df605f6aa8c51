package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outfitly/outfitly-cli/session"
	"github.com/outfitly/outfitly-cli/tags"
)

func (a *App) tagsCommand() *cobra.Command {
	parent := &cobra.Command{
		Use:   "tags",
		Short: "Manage the tag catalog (organization accounts)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireRole(session.RoleOrganization, session.RoleAdmin)
		},
	}
	parent.AddCommand(
		a.tagsListCommand(),
		a.tagsAddCommand(),
		a.tagsUpdateCommand(),
		a.tagsRemoveCommand(),
	)
	return parent
}

func (a *App) tagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.tags.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No tags found")
				return nil
			}
			for _, tag := range list {
				fmt.Fprintf(a.out, "%s  %s  %s  %d outfits\n", tag.ID, tag.Name, tag.Color, tag.OutfitCount)
			}
			return nil
		},
	}
}

func (a *App) tagsAddCommand() *cobra.Command {
	var draft tags.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.tags.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created tag %s (%s)\n", tag.Name, tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "tag name")
	cmd.Flags().StringVar(&draft.Color, "color", "", "hex color, defaults to "+tags.DefaultColor)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *App) tagsUpdateCommand() *cobra.Command {
	var draft tags.Draft

	cmd := &cobra.Command{
		Use:   "update <tag-id>",
		Short: "Update a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.tags.Update(cmd.Context(), args[0], draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated tag %s\n", tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "tag name")
	cmd.Flags().StringVar(&draft.Color, "color", "", "hex color")
	return cmd
}

func (a *App) tagsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <tag-id>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tags.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted tag %s\n", args[0])
			return nil
		},
	}
}
