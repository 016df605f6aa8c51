package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outfitly/outfitly-cli/auth"
	"github.com/outfitly/outfitly-cli/internal/utils"
)

func (a *App) loginCommand() *cobra.Command {
	var email, password string
	var admin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the outfitly backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := auth.Credentials{
				Email:    utils.FirstNonEmpty(email, os.Getenv("OUTFITLY_EMAIL")),
				Password: password,
			}
			if creds.Email == "" || creds.Password == "" {
				return fmt.Errorf("email and password are required")
			}

			var err error
			if admin {
				err = a.auth.AdminLogin(cmd.Context(), creds)
			} else {
				err = a.auth.Login(cmd.Context(), creds)
			}
			if err != nil {
				return err
			}

			state := a.sessions.State()
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", creds.Email, state.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (or OUTFITLY_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&admin, "admin", false, "use the admin login endpoint")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *App) registerCommand() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.auth.Register(cmd.Context(), auth.Registration{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *App) registerOrgCommand() *cobra.Command {
	var orgName, email, password string

	cmd := &cobra.Command{
		Use:   "register-org",
		Short: "Create an organization account",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.auth.RegisterOrganization(cmd.Context(), auth.Registration{
				OrganizationName: orgName,
				Email:            email,
				Password:         password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered organization %s\n", orgName)
			return nil
		},
	}

	cmd.Flags().StringVar(&orgName, "org-name", "", "organization name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("org-name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.sessions.State()
			if !state.IsAuthenticated {
				fmt.Fprintln(a.out, "Not logged in")
				return nil
			}

			fmt.Fprintf(a.out, "Role: %s\n", state.Role)
			if state.Claims != nil {
				if state.Claims.Email != "" {
					fmt.Fprintf(a.out, "Email: %s\n", state.Claims.Email)
				}
				if state.Claims.Expiry != nil {
					fmt.Fprintf(a.out, "Token expires: %s\n", state.Claims.Expiry.Format("2006-01-02 15:04:05"))
				}
			}
			return nil
		},
	}
}
