package cli

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// RootCommand assembles the full command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "outfitly",
		Short:         "Browse and manage outfits from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			a.displayAppName()
			_ = cmd.Help()
		},
	}

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.registerCommand(),
		a.registerOrgCommand(),
		a.whoamiCommand(),
		a.exploreCommand(),
		a.outfitsCommand(),
		a.tagsCommand(),
		a.orgsCommand(),
	)
	return root
}

func (a *App) displayAppName() {
	myFigure := figure.NewFigure(a.config.GetAppName(), "cybermedium", true)
	myFigure.Print()
	fmt.Fprintln(a.out)
}
