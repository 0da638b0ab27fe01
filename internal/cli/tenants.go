package cli

import (
	"fmt"

	"dormhub/internal/client"
	"dormhub/internal/client/viewmodel"

	"github.com/spf13/cobra"
)

// TenantsCmd 住户管理
func TenantsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Manage tenants",
	}
	cmd.AddCommand(tenantsListCmd(app), tenantsSearchCmd(app), tenantsAddCmd(app))
	return cmd
}

func roster(app *App) (*viewmodel.TenantRoster, error) {
	api, store, err := app.LoggedIn()
	if err != nil {
		return nil, err
	}
	return viewmodel.NewTenantRoster(api, store), nil
}

func tenantsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster(app)
			if err != nil {
				return err
			}
			if err := r.Load(cmd.Context()); err != nil {
				return Explain(err)
			}
			return printTenants(app.Out, r.Tenants())
		},
	}
}

func tenantsSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find tenants whose name contains QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster(app)
			if err != nil {
				return err
			}
			if err := r.Load(cmd.Context()); err != nil {
				return Explain(err)
			}
			return printTenants(app.Out, r.Search(args[0]))
		},
	}
}

func tenantsAddCmd(app *App) *cobra.Command {
	var t client.NewTenant

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant and mark their room occupied",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster(app)
			if err != nil {
				return err
			}
			res, err := r.AddTenant(cmd.Context(), t)
			if err != nil {
				return Explain(err)
			}
			fmt.Fprintf(app.Out, "Added tenant %s in room %s\n", res.Tenant.Name, res.Tenant.Room)
			if res.RoomStatusErr != nil {
				return fmt.Errorf("tenant saved but room %s was not marked occupied: %w", t.Room, Explain(res.RoomStatusErr))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&t.Name, "name", "", "tenant name")
	cmd.Flags().StringVar(&t.Room, "room", "", "room number")
	cmd.Flags().StringVar(&t.EmailAddress, "email", "", "email address")
	cmd.Flags().StringVar(&t.ContactNumber, "contact", "", "contact number")
	return cmd
}
