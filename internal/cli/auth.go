package cli

import (
	"fmt"

	"dormhub/internal/client"

	"github.com/spf13/cobra"
)

// LoginCmd 登录
func LoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store()
			if err != nil {
				return err
			}
			res, err := store.Acquire(cmd.Context(), email, password)
			if err != nil {
				return Explain(err)
			}
			fmt.Fprintf(app.Out, "Logged in as %s <%s>\n", res.User.Name, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

// RegisterCmd 注册
func RegisterCmd(app *App) *cobra.Command {
	var reg client.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store()
			if err != nil {
				return err
			}
			res, err := store.AcquireRegistration(cmd.Context(), reg)
			if err != nil {
				return Explain(err)
			}
			fmt.Fprintf(app.Out, "%s Logged in as %s\n", res.Message, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "full name")
	cmd.Flags().StringVar(&reg.PhoneNumber, "phone", "", "10-digit phone number")
	cmd.Flags().StringVarP(&reg.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "password, at least 8 characters")
	return cmd
}

// LogoutCmd 登出；服务端失败时也会清理本地token
func LogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session token and forget it",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store()
			if err != nil {
				return err
			}
			if err := store.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Logged out")
			return nil
		},
	}
}

// WhoamiCmd 当前用户
func WhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, store, err := app.LoggedIn()
			if err != nil {
				return err
			}
			user, err := api.CurrentUser(cmd.Context(), store.Session())
			if err != nil {
				return Explain(err)
			}
			fmt.Fprintf(app.Out, "%s <%s> %s\n", user.Name, user.Email, user.PhoneNumber)
			return nil
		},
	}
}
