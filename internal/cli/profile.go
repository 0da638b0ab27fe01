package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ProfileCmd 个人资料
func ProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
	}
	cmd.AddCommand(profileShowCmd(app), profileUploadCmd(app))
	return cmd
}

func profileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, store, err := app.LoggedIn()
			if err != nil {
				return err
			}
			p, err := api.Profile(cmd.Context(), store.Session())
			if err != nil {
				return Explain(err)
			}
			fmt.Fprintf(app.Out, "Name:     %s\n", p.Name)
			fmt.Fprintf(app.Out, "Email:    %s\n", p.Email)
			fmt.Fprintf(app.Out, "Phone:    %s\n", p.PhoneNumber)
			fmt.Fprintf(app.Out, "Picture:  %s\n", orDash(p.ProfilePicture))
			return nil
		},
	}
}

func profileUploadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a jpeg or png profile picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, store, err := app.LoggedIn()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			url, err := api.UploadProfilePicture(cmd.Context(), store.Session(), f.Name(), f)
			if err != nil {
				return Explain(err)
			}
			fmt.Fprintf(app.Out, "Profile picture updated: %s\n", url)
			return nil
		},
	}
}
