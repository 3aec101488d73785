package layerfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/metalstrap/metalstrap/pkg/io/layerfile"
	"github.com/metalstrap/metalstrap/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayerFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadOverlayFile(t *testing.T) {
	t.Parallel()

	path := writeLayerFile(t, "site.yaml", `name: site-tuning
priority: force
replace: true
values:
  services.openssh.enable: true
  networking:
    hostName: edge-01
`)

	loaded, err := layerfile.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "site-tuning", loaded.Name())
	assert.Equal(t, layer.PriorityForce, loaded.Priority())
	assert.Equal(t, layer.ModeReplace, loaded.Mode())

	values := loaded.Values()
	assert.Equal(t, true, values["services.openssh.enable"])

	networking, isMapping := values["networking"].(map[string]any)
	require.True(t, isMapping, "nested mappings keep their shape")
	assert.Equal(t, "edge-01", networking["hostName"])
}

func TestLoadDefaultsNameAndPriority(t *testing.T) {
	t.Parallel()

	path := writeLayerFile(t, "extras.yaml", `values:
  time.timeZone: UTC
`)

	loaded, err := layerfile.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "extras.yaml", loaded.Name())
	assert.Equal(t, layer.PriorityDefault, loaded.Priority())
	assert.Equal(t, layer.ModeMerge, loaded.Mode())
}

func TestLoadNumericPriority(t *testing.T) {
	t.Parallel()

	path := writeLayerFile(t, "weakish.yaml", `priority: 250
values:
  time.timeZone: UTC
`)

	loaded, err := layerfile.Load(path)

	require.NoError(t, err)
	assert.Equal(t, layer.Priority(250), loaded.Priority())
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("LAYERFILE_TEST_HOST", "edge-02")

	path := writeLayerFile(t, "host.yaml", `values:
  networking.hostName: ${LAYERFILE_TEST_HOST}
`)

	loaded, err := layerfile.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "edge-02", loaded.Values()["networking.hostName"])
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no values mapping",
			content: "priority: force\n",
			wantErr: layerfile.ErrNoValues,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: layerfile.ErrNoValues,
		},
		{
			name: "unknown priority name",
			content: `priority: strongest
values:
  a: 1
`,
			wantErr: layerfile.ErrInvalidPriority,
		},
		{
			name: "non-scalar priority",
			content: `priority: [50]
values:
  a: 1
`,
			wantErr: layerfile.ErrInvalidPriority,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := writeLayerFile(t, "layer.yaml", testCase.content)

			_, err := layerfile.Load(path)

			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	path := writeLayerFile(t, "typo.yaml", `vaules:
  a: 1
`)

	_, err := layerfile.Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo.yaml")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := layerfile.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read layer file")
}

func TestLoadAllPreservesOrder(t *testing.T) {
	t.Parallel()

	first := writeLayerFile(t, "first.yaml", "values:\n  a: 1\n")
	second := writeLayerFile(t, "second.yaml", "values:\n  a: 2\n")

	layers, err := layerfile.LoadAll([]string{first, second})

	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "first.yaml", layers[0].Name())
	assert.Equal(t, "second.yaml", layers[1].Name())

	resolved := layer.Resolve(layers...)
	value, found := resolved.Lookup("a")
	require.True(t, found)
	assert.Equal(t, 2, value, "later files stack on earlier ones")
}

func TestLoadAllStopsOnFirstError(t *testing.T) {
	t.Parallel()

	valid := writeLayerFile(t, "valid.yaml", "values:\n  a: 1\n")
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	layers, err := layerfile.LoadAll([]string{valid, missing})

	require.Error(t, err)
	assert.Nil(t, layers)
}
