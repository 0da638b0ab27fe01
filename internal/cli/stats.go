package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dormhub/internal/client/viewmodel"

	"github.com/spf13/cobra"
)

// StatsCmd 房间统计；--watch 时按固定间隔刷新直到中断
func StatsCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show room occupancy statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, store, err := app.LoggedIn()
			if err != nil {
				return err
			}
			dash := viewmodel.NewDashboard(api, store, app.Config.StatsInterval)

			if !watch {
				snap, err := dash.Refresh(cmd.Context())
				if err != nil {
					return Explain(err)
				}
				printStats(app.Out, snap.Stats)
				return nil
			}

			dash.OnUpdate(func(snap viewmodel.Snapshot) {
				fmt.Fprintf(app.Out, "\n%s\n", snap.FetchedAt.Format("15:04:05"))
				if snap.Err != nil {
					fmt.Fprintf(app.Out, "refresh failed: %v\n", Explain(snap.Err))
				}
				printStats(app.Out, snap.Stats)
			})
			if err := dash.Start(); err != nil {
				return err
			}
			defer dash.Stop()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep refreshing")
	return cmd
}
