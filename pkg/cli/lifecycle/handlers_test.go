package lifecycle_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/metalstrap/metalstrap/pkg/apis/machine/v1alpha1"
	"github.com/metalstrap/metalstrap/pkg/cli/helpers"
	"github.com/metalstrap/metalstrap/pkg/cli/lifecycle"
	"github.com/metalstrap/metalstrap/pkg/di"
	"github.com/metalstrap/metalstrap/pkg/io/configmanager"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAction = errors.New("action failed")

const minimalMachineYAML = `apiVersion: metalstrap.dev/v1alpha1
kind: Machine
spec:
  install:
    systemImage: /nix/store/abc123-system
    prepareScript: ./prepare.sh
`

func writeMinimalConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalMachineYAML), 0o600))

	return path
}

func newHandlerCommand(output *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP(helpers.ConfigFlagName, "c", "", "")
	cmd.Flags().Bool(helpers.TimingFlagName, false, "")
	cmd.SetOut(output)

	return cmd
}

func TestWrapHandlerLoadsConfigAndResolvesDeps(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	cmd := newHandlerCommand(&output)
	require.NoError(t, cmd.Flags().Set(helpers.ConfigFlagName, writeMinimalConfig(t)))

	cfgManager := configmanager.NewConfigManager(&output)

	var (
		gotDeps    lifecycle.Deps
		gotMachine *v1alpha1.Machine
	)

	runE := lifecycle.WrapHandler(
		di.NewRuntime(),
		cfgManager,
		func(_ *cobra.Command, manager *configmanager.ConfigManager, deps lifecycle.Deps) error {
			gotDeps = deps
			gotMachine = manager.Config

			return nil
		},
	)

	err := runE(cmd, nil)

	require.NoError(t, err)
	require.NotNil(t, gotMachine)
	assert.Equal(t, "/nix/store/abc123-system", gotMachine.Spec.Install.SystemImage)
	assert.NotNil(t, gotDeps.Timer)
	assert.NotNil(t, gotDeps.Builder)
	assert.NotNil(t, gotDeps.Generator)
}

func TestWrapHandlerReturnsConfigLoadError(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	cmd := newHandlerCommand(&output)
	require.NoError(t, cmd.Flags().Set(helpers.ConfigFlagName, filepath.Join(t.TempDir(), "missing.yaml")))

	cfgManager := configmanager.NewConfigManager(&output)

	runE := lifecycle.WrapHandler(
		di.NewRuntime(),
		cfgManager,
		func(*cobra.Command, *configmanager.ConfigManager, lifecycle.Deps) error {
			t.Fatal("handler should not run when config loading fails")

			return nil
		},
	)

	err := runE(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load machine configuration")
}

func TestWrapHandlerFailsWithoutTimerProvider(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	cmd := newHandlerCommand(&output)
	cfgManager := configmanager.NewConfigManager(&output)

	// An empty runtime has no providers registered, so timer resolution fails
	// before the handler runs.
	runE := lifecycle.WrapHandler(
		di.New(),
		cfgManager,
		func(*cobra.Command, *configmanager.ConfigManager, lifecycle.Deps) error {
			t.Fatal("handler should not run without dependencies")

			return nil
		},
	)

	err := runE(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve timer dependency")
}

func TestWrapHandlerWithOptionsSkipsValidation(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	invalid := filepath.Join(t.TempDir(), "machine.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("apiVersion: metalstrap.dev/v1alpha1\nkind: Cluster\n"), 0o600))

	cmd := newHandlerCommand(&output)
	require.NoError(t, cmd.Flags().Set(helpers.ConfigFlagName, invalid))

	cfgManager := configmanager.NewConfigManager(&output)

	handlerCalled := false
	runE := lifecycle.WrapHandlerWithOptions(
		di.NewRuntime(),
		cfgManager,
		func(*cobra.Command, *configmanager.ConfigManager, lifecycle.Deps) error {
			handlerCalled = true

			return nil
		},
		configmanager.LoadOptions{SkipValidation: true},
	)

	require.NoError(t, runE(cmd, nil))
	assert.True(t, handlerCalled)
}

func TestRunStageSuccessMessaging(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(&output)

	err := lifecycle.RunStage(cmd, lifecycle.Deps{}, lifecycle.Config{
		TitleEmoji:         "📜",
		TitleContent:       "Build install script...",
		ActivityContent:    "building install script",
		SuccessContent:     "install script built",
		ErrorMessagePrefix: "failed to build install script",
	}, func() error {
		return nil
	})

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Build install script...")
	assert.Contains(t, output.String(), "building install script")
	assert.Contains(t, output.String(), "install script built")
}

func TestRunStageWrapsActionError(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(&output)

	err := lifecycle.RunStage(cmd, lifecycle.Deps{}, lifecycle.Config{
		TitleEmoji:         "💿",
		TitleContent:       "Build installer image...",
		ActivityContent:    "building installer image",
		SuccessContent:     "installer image inputs built",
		ErrorMessagePrefix: "failed to build installer image",
	}, func() error {
		return errAction
	})

	require.Error(t, err)
	require.ErrorIs(t, err, errAction)
	assert.Contains(t, err.Error(), "failed to build installer image")
	assert.NotContains(t, output.String(), "installer image inputs built")
}
