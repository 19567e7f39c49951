// Copyright © 2015-2016 Galvanized Logic. All rights reserved.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempScene(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRunMissingSceneFlagReturnsUsageExitCode(t *testing.T) {
	if code := run([]string{}); code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
}

func TestRunNonexistentSceneFileReturnsFailureExitCode(t *testing.T) {
	dir := t.TempDir()
	if code := run([]string{"-scene", filepath.Join(dir, "missing.txt")}); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
}

func TestRunMalformedSceneReturnsFailureExitCode(t *testing.T) {
	dir := t.TempDir()
	path := writeTempScene(t, dir, "scene.txt", "size not-a-number 20\n")
	if code := run([]string{"-scene", path}); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
}

func TestRunRendersPNGFromSceneOutputDirective(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "rendered.png")
	scene := "size 20 20\noutput " + out + "\ncamera 0 0 5 0 0 0 0 1 0 60\nambient 0.1 0.1 0.1\ndiffuse 0.8 0 0\nsphere 0 0 0 1\n"
	path := writeTempScene(t, dir, "scene.txt", scene)

	if code := run([]string{"-scene", path, "-config", filepath.Join(dir, "missing.yaml")}); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("expected output PNG at %s: %v", out, err)
	}
	if info.Size() == 0 {
		t.Error("output PNG is empty")
	}
}

func TestRunOutFlagOverridesSceneOutputDirective(t *testing.T) {
	dir := t.TempDir()
	sceneOut := filepath.Join(dir, "ignored.png")
	override := filepath.Join(dir, "override.png")
	scene := "size 10 10\noutput " + sceneOut + "\ncamera 0 0 5 0 0 0 0 1 0 60\nambient 0.1 0.1 0.1\ndiffuse 0.8 0 0\nsphere 0 0 0 1\n"
	path := writeTempScene(t, dir, "scene.txt", scene)

	code := run([]string{"-scene", path, "-out", override, "-config", filepath.Join(dir, "missing.yaml")})
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if _, err := os.Stat(override); err != nil {
		t.Errorf("expected override output at %s: %v", override, err)
	}
	if _, err := os.Stat(sceneOut); err == nil {
		t.Error("scene's own output directive should have been overridden")
	}
}

func TestRunGoldenMatchSucceeds(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "rendered.png")
	scene := "size 12 12\noutput " + out + "\ncamera 0 0 5 0 0 0 0 1 0 60\nambient 0.1 0.1 0.1\ndiffuse 0.8 0 0\nsphere 0 0 0 1\n"
	path := writeTempScene(t, dir, "scene.txt", scene)

	if code := run([]string{"-scene", path, "-config", filepath.Join(dir, "missing.yaml")}); code != 0 {
		t.Fatalf("initial render run() = %d, want 0", code)
	}

	gold := filepath.Join(dir, "gold.png")
	if err := os.Rename(out, gold); err != nil {
		t.Fatalf("could not stage gold image: %v", err)
	}

	if code := run([]string{"-scene", path, "-golden", gold, "-config", filepath.Join(dir, "missing.yaml")}); code != 0 {
		t.Errorf("run() with matching -golden = %d, want 0", code)
	}
}

func TestRunGoldenMismatchReturnsFailureExitCode(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "rendered.png")
	scene := "size 12 12\noutput " + out + "\ncamera 0 0 5 0 0 0 0 1 0 60\nambient 0.1 0.1 0.1\ndiffuse 0.8 0 0\nsphere 0 0 0 1\n"
	path := writeTempScene(t, dir, "scene.txt", scene)

	differentScene := "size 12 12\noutput " + out + "\ncamera 0 0 5 0 0 0 0 1 0 60\nambient 0.9 0.9 0.9\ndiffuse 0 0 0.05\nsphere 0 0 0 1\n"
	goldScenePath := writeTempScene(t, dir, "gold_scene.txt", differentScene)
	gold := filepath.Join(dir, "gold.png")
	if code := run([]string{"-scene", goldScenePath, "-out", gold, "-config", filepath.Join(dir, "missing.yaml")}); code != 0 {
		t.Fatalf("gold render run() = %d, want 0", code)
	}

	if code := run([]string{"-scene", path, "-golden", gold, "-config", filepath.Join(dir, "missing.yaml")}); code != 1 {
		t.Errorf("run() with mismatching -golden = %d, want 1", code)
	}
}

func TestRunMissingOutputAnywhereReturnsUsageExitCode(t *testing.T) {
	dir := t.TempDir()
	scene := "size 10 10\ncamera 0 0 5 0 0 0 0 1 0 60\nambient 0.1 0.1 0.1\ndiffuse 0.8 0 0\nsphere 0 0 0 1\n"
	path := writeTempScene(t, dir, "scene.txt", scene)

	if code := run([]string{"-scene", path, "-config", filepath.Join(dir, "missing.yaml")}); code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
}
