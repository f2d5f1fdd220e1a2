package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/school/internal/bootstrap"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath(cmd))
			if err != nil {
				return err
			}

			database, err := bootstrap.ConnectDatabase(cmd.Context(), cfg, lgr)
			if err != nil {
				return err
			}
			defer database.Close()

			return bootstrap.RunMigrations(cmd.Context(), cfg, database, lgr)
		},
	}
}
