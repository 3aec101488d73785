package layer_test

import (
	"testing"

	"github.com/metalstrap/metalstrap/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvedLookupMiss(t *testing.T) {
	t.Parallel()

	resolved := layer.Resolve(layer.New("machine", map[string]any{"hostname": "edge-01"}))

	value, found := resolved.Lookup("networking.hostName")

	assert.False(t, found)
	assert.Nil(t, value)
}

func TestResolvedLookupReturnsDeepCopy(t *testing.T) {
	t.Parallel()

	resolved := layer.Resolve(layer.New("machine", map[string]any{
		"disko": map[string]any{"devices": map[string]any{"disk": map[string]any{"main": map[string]any{"device": "/dev/sda"}}}},
	}))

	first, found := resolved.Lookup("disko.devices.disk.main")
	require.True(t, found)

	mapping, isMapping := first.(map[string]any)
	require.True(t, isMapping)
	mapping["device"] = "/dev/tampered"

	second, found := resolved.Lookup("disko.devices.disk.main.device")
	require.True(t, found)
	assert.Equal(t, "/dev/sda", second, "lookups must not alias the resolved tree")
}

func TestResolvedStringAt(t *testing.T) {
	t.Parallel()

	resolved := layer.Resolve(layer.New("machine", map[string]any{
		"hostname": "edge-01",
		"port":     22,
	}))

	hostname, found := resolved.StringAt("hostname")
	assert.True(t, found)
	assert.Equal(t, "edge-01", hostname)

	_, found = resolved.StringAt("port")
	assert.False(t, found, "non-string values do not satisfy StringAt")

	_, found = resolved.StringAt("absent")
	assert.False(t, found)
}

func TestResolvedKeysFollowDeclarationOrder(t *testing.T) {
	t.Parallel()

	tank := layer.New("tank", map[string]any{
		"disko": map[string]any{"devices": map[string]any{"zpool": map[string]any{"tank": map[string]any{"type": "zpool"}}}},
	})
	apool := layer.New("apool", map[string]any{
		"disko": map[string]any{"devices": map[string]any{"zpool": map[string]any{"apool": map[string]any{"type": "zpool"}}}},
	})

	keys := layer.Resolve(tank, apool).Keys("disko.devices.zpool")

	assert.Equal(t, []string{"tank", "apool"}, keys,
		"stack order decides child order, not lexicographic sorting across layers")
}

func TestResolvedKeysWithinOneLayerAreSorted(t *testing.T) {
	t.Parallel()

	pools := layer.New("pools", map[string]any{
		"disko": map[string]any{"devices": map[string]any{"zpool": map[string]any{
			"zeta": map[string]any{"type": "zpool"},
			"alpha": map[string]any{"type": "zpool"},
		}}},
	})

	keys := layer.Resolve(pools).Keys("disko.devices.zpool")

	assert.Equal(t, []string{"alpha", "zeta"}, keys,
		"keys declared in one mapping apply in lexicographic order for determinism")
}

func TestResolvedKeysOnScalarOrAbsentPath(t *testing.T) {
	t.Parallel()

	resolved := layer.Resolve(layer.New("machine", map[string]any{"hostname": "edge-01"}))

	assert.Nil(t, resolved.Keys("hostname"))
	assert.Nil(t, resolved.Keys("absent"))
}

func TestResolvedMapOnEmptyStack(t *testing.T) {
	t.Parallel()

	assert.Empty(t, layer.Resolve().Map())
}

func TestResolvedExtendParticipatesInConflictResolution(t *testing.T) {
	t.Parallel()

	pinned := layer.NewWithPriority("pinned", layer.PriorityForce, map[string]any{"hostname": "pinned"})
	resolved := layer.Resolve(pinned)

	extended := resolved.Extend(layer.New("late", map[string]any{
		"hostname": "late",
		"timezone": "UTC",
	}))

	hostname, found := extended.Lookup("hostname")
	require.True(t, found)
	assert.Equal(t, "pinned", hostname, "extension layers join the stack instead of patching the tree")

	timezone, found := extended.Lookup("timezone")
	require.True(t, found)
	assert.Equal(t, "UTC", timezone)
}

func TestResolvedExtendLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()

	resolved := layer.Resolve(layer.New("machine", map[string]any{"hostname": "edge-01"}))
	_ = resolved.Extend(layer.New("late", map[string]any{"timezone": "UTC"}))

	assert.False(t, resolved.Has("timezone"))
	assert.Len(t, resolved.Layers(), 1)
}

func TestWarningString(t *testing.T) {
	t.Parallel()

	warning := layer.Warning{
		Path:     "service",
		Layer:    "scalar",
		Earlier:  "mapping",
		Priority: layer.PriorityDefault,
	}

	assert.Equal(
		t,
		`conflicting value shapes at "service": layer "scalar" overrides layer "mapping" at priority 100`,
		warning.String(),
	)
}
