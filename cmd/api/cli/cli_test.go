package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInfo = VersionInfo{Version: "1.2.3", Commit: "abc"}

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand(testInfo)
	root.AddCommand(NewVersionCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "1.2.3.abc\n", out.String())
}

func TestConfigPathFlag(t *testing.T) {
	root := NewRootCommand(testInfo)
	assert.Equal(t, DefaultConfigPath, configPath(root))

	require.NoError(t, root.PersistentFlags().Set("config", "/etc/school.yaml"))
	assert.Equal(t, "/etc/school.yaml", configPath(root))
}

func TestSubcommandsRejectArguments(t *testing.T) {
	root := NewRootCommand(testInfo)
	root.AddCommand(NewServeCommand(), NewMigrateCommand())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	root.SetArgs([]string{"migrate", "extra"})
	assert.Error(t, root.Execute())
}
