package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/metalstrap/metalstrap/pkg/cli/cmd"
	"github.com/metalstrap/metalstrap/pkg/di"
	"github.com/metalstrap/metalstrap/pkg/svc/layout"
	"github.com/metalstrap/metalstrap/pkg/svc/pipeline"
)

// machineWithDisksYAML declares one disk so opinionated runs can generate
// the full layout without extra flags.
const machineWithDisksYAML = `apiVersion: metalstrap.dev/v1alpha1
kind: Machine
metadata:
  name: rack-7
spec:
  install:
    systemImage: /nix/store/abc123-system
    prepareScript: ./prepare.sh
  disks:
    - device: /dev/sda
`

// machineWithoutDisksYAML leaves the disk layout to overlays or flags.
const machineWithoutDisksYAML = `apiVersion: metalstrap.dev/v1alpha1
kind: Machine
metadata:
  name: rack-7
spec:
  install:
    systemImage: /nix/store/abc123-system
    prepareScript: ./prepare.sh
`

// writeFixture writes contents into dir under name and returns the path.
func writeFixture(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.WriteFile(path, []byte(contents), 0o600)
	if err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}

	return path
}

// runCommand executes the root command with args and returns the combined
// output and the execution error.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := cmd.NewRootCmd("test", "test", "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestNewScriptCmdHasCorrectDefaults(t *testing.T) {
	t.Parallel()

	scriptCmd := cmd.NewScriptCmd(di.NewRuntime())

	if scriptCmd.Use != "script" {
		t.Fatalf("expected Use to be 'script', got %q", scriptCmd.Use)
	}

	output, _ := scriptCmd.Flags().GetString("output")
	if output != "install.sh" {
		t.Fatalf("expected output to default to 'install.sh', got %q", output)
	}

	opinionated, _ := scriptCmd.Flags().GetBool("opinionated")
	if opinionated {
		t.Fatal("expected opinionated to default to false")
	}

	force, _ := scriptCmd.Flags().GetBool("force")
	if force {
		t.Fatal("expected force to default to false")
	}

	device, _ := scriptCmd.Flags().GetString("device")
	if device != "" {
		t.Fatalf("expected device to default to empty, got %q", device)
	}

	pool, _ := scriptCmd.Flags().GetString("pool")
	if pool != "" {
		t.Fatalf("expected pool to default to empty, got %q", pool)
	}
}

func TestScriptCmdShowsHelp(t *testing.T) {
	t.Parallel()

	scriptCmd := cmd.NewScriptCmd(di.NewRuntime())

	var output bytes.Buffer
	scriptCmd.SetOut(&output)
	scriptCmd.SetErr(&output)
	scriptCmd.SetArgs([]string{"--help"})

	err := scriptCmd.Execute()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	snaps.MatchSnapshot(t, output.String())
}

func TestScriptBuildsOpinionatedInstallScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFixture(t, dir, "machine.yaml", machineWithDisksYAML)
	outPath := filepath.Join(dir, "install.sh")

	output, err := runCommand(t,
		"script", "-c", cfgPath, "--opinionated", "-o", outPath,
	)
	if err != nil {
		t.Fatalf("expected no error, got %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, "✔ install script built") {
		t.Fatalf("expected success message, got %q", output)
	}

	if !strings.Contains(output, "created '"+outPath+"'") {
		t.Fatalf("expected created message for %s, got %q", outPath, output)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("expected install script to exist: %v", err)
	}

	if info.Mode()&0o111 == 0 {
		t.Fatalf("expected install script to be executable, got mode %v", info.Mode())
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read install script: %v", err)
	}

	script := string(raw)

	for _, fragment := range []string{
		"#!/usr/bin/env bash",
		"set -euo pipefail",
		"# Provisioning run for /dev/sda. Generated by metalstrap.",
		"# partition /dev/sda and mount the target filesystems",
		"'./prepare.sh'",
		"nixos-install --no-root-password --option substituters \"\" --no-channel-copy --system '/nix/store/abc123-system'",
		"umount -R '/mnt'",
		"zpool export 'rpool'",
	} {
		if !strings.Contains(script, fragment) {
			t.Fatalf("expected script to contain %q, got:\n%s", fragment, script)
		}
	}

	if strings.Contains(script, "reboot") {
		t.Fatalf("expected standalone script to skip the reboot step, got:\n%s", script)
	}
}

func TestScriptRequiresDiskLayoutWithoutOpinionatedDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFixture(t, dir, "machine.yaml", machineWithDisksYAML)
	outPath := filepath.Join(dir, "install.sh")

	_, err := runCommand(t, "script", "-c", cfgPath, "-o", outPath)
	if err == nil {
		t.Fatal("expected error without a disk layout, got none")
	}

	if !errors.Is(err, pipeline.ErrMissingDiskLayout) {
		t.Fatalf("expected ErrMissingDiskLayout, got %v", err)
	}

	if !strings.Contains(err.Error(), "failed to build install script") {
		t.Fatalf("expected stage prefix in error, got %v", err)
	}

	if _, statErr := os.Stat(outPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected no install script to be written, got %v", statErr)
	}
}

func TestScriptUsesDiskLayoutFromLayerOverlay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFixture(t, dir, "machine.yaml", machineWithoutDisksYAML)
	overlayPath := writeFixture(t, dir, "lab-disks.yaml", `name: lab-disks
values:
  disko.devices.disk.vdb:
    device: /dev/vdb
    type: disk
  disko.devices.zpool.tank:
    mode: ""
`)
	outPath := filepath.Join(dir, "install.sh")

	output, err := runCommand(t,
		"script", "-c", cfgPath, "-d", "/dev/vdb", "--layer", overlayPath, "-o", outPath,
	)
	if err != nil {
		t.Fatalf("expected no error, got %v\noutput: %s", err, output)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read install script: %v", err)
	}

	script := string(raw)

	if !strings.Contains(script, "# Provisioning run for /dev/vdb. Generated by metalstrap.") {
		t.Fatalf("expected script for /dev/vdb, got:\n%s", script)
	}

	if !strings.Contains(script, "zpool export 'tank'") {
		t.Fatalf("expected pool export from the overlay layout, got:\n%s", script)
	}
}

func TestScriptSetAddsForceOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFixture(t, dir, "machine.yaml", machineWithDisksYAML)
	outPath := filepath.Join(dir, "install.sh")

	output, err := runCommand(t,
		"script", "-c", cfgPath, "--opinionated", "-o", outPath,
		"--set", "disko.devices.zpool.tank.mode=mirror",
	)
	if err != nil {
		t.Fatalf("expected no error, got %v\noutput: %s", err, output)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read install script: %v", err)
	}

	script := string(raw)

	if !strings.Contains(script, "zpool export 'rpool'") {
		t.Fatalf("expected generated pool export to survive, got:\n%s", script)
	}

	if !strings.Contains(script, "zpool export 'tank'") {
		t.Fatalf("expected pool export from --set, got:\n%s", script)
	}
}

func TestScriptSkipsExistingOutputWithoutForce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFixture(t, dir, "machine.yaml", machineWithDisksYAML)
	outPath := filepath.Join(dir, "install.sh")

	_, err := runCommand(t, "script", "-c", cfgPath, "--opinionated", "-o", outPath)
	if err != nil {
		t.Fatalf("expected first run to succeed, got %v", err)
	}

	output, err := runCommand(t, "script", "-c", cfgPath, "--opinionated", "-o", outPath)
	if err != nil {
		t.Fatalf("expected second run to succeed, got %v", err)
	}

	if !strings.Contains(output, "skipped '"+outPath+"'") {
		t.Fatalf("expected skip message, got %q", output)
	}

	if !strings.Contains(output, "--force") {
		t.Fatalf("expected overwrite hint, got %q", output)
	}

	output, err = runCommand(t, "script", "-c", cfgPath, "--opinionated", "-o", outPath, "--force")
	if err != nil {
		t.Fatalf("expected forced run to succeed, got %v", err)
	}

	if !strings.Contains(output, "overwrote '"+outPath+"'") {
		t.Fatalf("expected overwrote message, got %q", output)
	}
}

func TestScriptFailsWithoutDeviceOrDisks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFixture(t, dir, "machine.yaml", machineWithoutDisksYAML)

	_, err := runCommand(t,
		"script", "-c", cfgPath, "--opinionated", "-o", filepath.Join(dir, "install.sh"),
	)
	if err == nil {
		t.Fatal("expected error without disks or a device flag, got none")
	}

	if !errors.Is(err, layout.ErrInvalidDiskSpec) {
		t.Fatalf("expected ErrInvalidDiskSpec, got %v", err)
	}

	if !strings.Contains(err.Error(), "failed to generate disk layout") {
		t.Fatalf("expected layout generation context in error, got %v", err)
	}
}
