package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// DefaultConfigPath is read when --config is not given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// VersionInfo is stamped into the binary at build time
type VersionInfo struct {
	Version string
	Commit  string
}

func NewRootCommand(info VersionInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "school",
		Short:         "School API server",
		Long:          "HTTP API for managing students, faculties and student avatars.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.PersistentFlags().String("config", DefaultConfigPath, "config file")
	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}

func configPath(cmd *cobra.Command) string {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil || path == "" {
		return DefaultConfigPath
	}
	return path
}
