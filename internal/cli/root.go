package cli

import (
	"dormhub/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd 构建 dormctl 命令树
func RootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "dormctl",
		Short:         "Dormitory management client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.UseCLI(cmd.ErrOrStderr(), verbose)
			logger.GetLogger().WithFields(logrus.Fields{
				"api":   app.Config.APIURL,
				"state": app.Config.StatePath,
			}).Debug("dormctl starting")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&app.Config.APIURL, "api", app.Config.APIURL, "API base URL")
	root.PersistentFlags().StringVar(&app.Config.StatePath, "state", app.Config.StatePath, "local session store")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		LoginCmd(app),
		RegisterCmd(app),
		LogoutCmd(app),
		WhoamiCmd(app),
		RoomsCmd(app),
		StatsCmd(app),
		TenantsCmd(app),
		ProfileCmd(app),
	)
	return root
}
