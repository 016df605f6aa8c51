package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/outfitly/outfitly-cli/items"
)

func (a *App) exploreCommand() *cobra.Command {
	var params items.ListParams

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse shared outfits",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireAuth()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.items.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			a.printItems(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Search, "search", "", "filter by name")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort order")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "page size")
	return cmd
}

func (a *App) outfitsCommand() *cobra.Command {
	parent := &cobra.Command{
		Use:   "outfits",
		Short: "Manage your wardrobe",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireAuth()
		},
	}
	parent.AddCommand(
		a.outfitsListCommand(),
		a.outfitsShowCommand(),
		a.outfitsAddCommand(),
		a.outfitsUpdateCommand(),
		a.outfitsRemoveCommand(),
		a.outfitsPhotoCommand(),
	)
	return parent
}

func (a *App) outfitsListCommand() *cobra.Command {
	var params items.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outfits",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.items.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			a.printItems(list)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Search, "search", "", "filter by name")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort order")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "page size")
	return cmd
}

func (a *App) outfitsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one outfit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.items.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s  %s\n", item.ID, item.Name)
			if item.Description != "" {
				fmt.Fprintln(a.out, item.Description)
			}
			if len(item.Tags) > 0 {
				fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(item.Tags, ", "))
			}
			for _, photo := range item.Photos {
				fmt.Fprintf(a.out, "Photo %s: %s\n", photo.ID, photo.URL)
			}
			return nil
		},
	}
}

func (a *App) outfitsAddCommand() *cobra.Command {
	var draft items.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an outfit",
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.items.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created outfit %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "outfit name")
	cmd.Flags().StringVar(&draft.Description, "description", "", "outfit description")
	cmd.Flags().StringSliceVar(&draft.Tags, "tag", nil, "tag ID (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *App) outfitsUpdateCommand() *cobra.Command {
	var draft items.Draft

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update an outfit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.items.Update(cmd.Context(), args[0], draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated outfit %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "outfit name")
	cmd.Flags().StringVar(&draft.Description, "description", "", "outfit description")
	cmd.Flags().StringSliceVar(&draft.Tags, "tag", nil, "tag ID (repeatable)")
	return cmd
}

func (a *App) outfitsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Delete an outfit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.items.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted outfit %s\n", args[0])
			return nil
		},
	}
}

func (a *App) outfitsPhotoCommand() *cobra.Command {
	parent := &cobra.Command{
		Use:   "photo",
		Short: "Manage outfit photos",
	}

	addCmd := &cobra.Command{
		Use:   "add <item-id> <file>",
		Short: "Upload an outfit photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, path := args[0], args[1]

			item, err := a.items.Get(cmd.Context(), itemID)
			if err != nil {
				return err
			}
			if len(item.Photos) >= items.MaxPhotos {
				return errors.Errorf("outfit already has %d photos (max %d)", len(item.Photos), items.MaxPhotos)
			}

			file, err := os.Open(path)
			if err != nil {
				return errors.Wrap(err, "open photo")
			}
			defer file.Close()

			if _, err := a.items.AddPhoto(cmd.Context(), itemID, file.Name(), file); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Uploaded %s to outfit %s\n", path, itemID)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <item-id> <photo-id>",
		Short: "Delete an outfit photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.items.DeletePhoto(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted photo %s from outfit %s\n", args[1], args[0])
			return nil
		},
	}

	parent.AddCommand(addCmd, rmCmd)
	return parent
}

func (a *App) printItems(list []items.Item) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No outfits found")
		return
	}
	for _, item := range list {
		line := fmt.Sprintf("%s  %s", item.ID, item.Name)
		if len(item.Tags) > 0 {
			line += "  [" + strings.Join(item.Tags, ", ") + "]"
		}
		fmt.Fprintln(a.out, line)
	}
}
