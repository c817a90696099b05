package soma

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soma.db")
	for i := 0; i < 2; i++ {
		buf := &bytes.Buffer{}
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs([]string{"--db", path, "init"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestConfigSetAndGetThroughCLI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soma.db")

	run := func(args ...string) *bytes.Buffer {
		t.Helper()
		buf := &bytes.Buffer{}
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs(append([]string{"--db", path}, args...))
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("execute %v: %v", args, err)
		}
		return buf
	}

	run("init")
	run("config", "set", "default_meal_slot", "lunch")
	out := run("config", "get", "default_meal_slot")
	if !bytes.Contains(out.Bytes(), []byte("lunch")) {
		t.Fatalf("expected value in output, got %q", out.String())
	}
}
