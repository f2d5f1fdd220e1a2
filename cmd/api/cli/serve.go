package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/school/internal/server"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	srv, err := server.NewServer(cmd.Context(), configPath(cmd))
	if err != nil {
		return err
	}
	return srv.Run()
}
