package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// script writes src to a temporary .lisp file.
func script(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lisp")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const triangleScript = `(polygon (point 0 0 0) (point 1 0 0) (point 0 1 0))`

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	defer SetVersion("dev", "", "")

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestEvalCmd(t *testing.T) {
	out, _, err := execute(t, "eval", script(t, triangleScript), "--faces")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	for _, want := range []string{"vertices: 3", "edges: 3", "loops: 1", "faces: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEvalCmdScriptError(t *testing.T) {
	path := script(t, `(segment (point 0 0 0))`)
	_, _, err := execute(t, "eval", path)
	if err == nil {
		t.Fatal("expected an error for a failing script")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the script", err)
	}
}

func TestEvalCmdMissingFile(t *testing.T) {
	if _, _, err := execute(t, "eval", filepath.Join(t.TempDir(), "missing.lisp")); err == nil {
		t.Fatal("expected an error for a missing script")
	}
}

func TestEvalCmdSTLNeedsFaces(t *testing.T) {
	stl := filepath.Join(t.TempDir(), "out.stl")
	_, _, err := execute(t, "eval", script(t, triangleScript), "--stl", stl)
	if err == nil || !strings.Contains(err.Error(), "no faces") {
		t.Fatalf("expected a no faces error, got %v", err)
	}
}

func TestEvalCmdSTL(t *testing.T) {
	stl := filepath.Join(t.TempDir(), "out.stl")
	_, stderr, err := execute(t, "eval", script(t, triangleScript), "--faces", "--stl", stl)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	info, err := os.Stat(stl)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("STL file is empty")
	}
	if !strings.Contains(stderr, "Wrote 1 triangles") {
		t.Errorf("stderr missing export summary:\n%s", stderr)
	}
}

func TestVerboseLogsEngine(t *testing.T) {
	_, stderr, err := execute(t, "eval", script(t, triangleScript), "-v")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !strings.Contains(stderr, "evaluation finished") {
		t.Errorf("verbose stderr missing engine debug record:\n%s", stderr)
	}

	_, stderr, err = execute(t, "eval", script(t, triangleScript))
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if strings.Contains(stderr, "evaluation finished") {
		t.Errorf("non-verbose stderr has debug records:\n%s", stderr)
	}
}

func TestTolerancesFlag(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[tolerances]\nepsilon_vertex_coincident = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "--tolerances", bad, "flask"); err == nil {
		t.Fatal("expected an error for a non-positive tolerance")
	}

	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte("[tolerances]\nepsilon_vertex_coincident = 1e-8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "--tolerances", good, "flask"); err != nil {
		t.Fatalf("flask with tolerances: %v", err)
	}
}

func TestLoopsCmd(t *testing.T) {
	dot := filepath.Join(t.TempDir(), "loops.dot")
	out, _, err := execute(t, "loops", script(t, triangleScript), "--dot", dot)
	if err != nil {
		t.Fatalf("loops: %v", err)
	}
	if !strings.Contains(out, "loop 0: e0F e1F e2F") {
		t.Errorf("output = %q, want the triangle loop", out)
	}
	data, err := os.ReadFile(dot)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph Loops {") {
		t.Errorf("DOT file starts with %q", string(data[:min(len(data), 20)]))
	}
}

func TestFlaskCmd(t *testing.T) {
	out, _, err := execute(t, "flask")
	if err != nil {
		t.Fatalf("flask: %v", err)
	}
	for _, want := range []string{"vertices: 6", "edges: 6", "faces: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFlaskCmdSTL(t *testing.T) {
	stl := filepath.Join(t.TempDir(), "flask.stl")
	if _, _, err := execute(t, "flask", "--stl", stl, "--samples", "32"); err != nil {
		t.Fatalf("flask: %v", err)
	}
	info, err := os.Stat(stl)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("STL file is empty")
	}
}

func TestBuildFlaskDegenerate(t *testing.T) {
	if _, err := buildFlask(tolerancesFromContext(context.Background()), 0, 3); err == nil {
		t.Error("buildFlask with zero width: expected error")
	}
}
