package commands

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
)

func newTestRegistry(t *testing.T) (*Registry, *string, *int, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := NewRegistry("run", &out)
	ran := new(string)
	seed := new(int)

	runFS := flag.NewFlagSet("run", flag.ExitOnError)
	runFS.IntVar(seed, "seed", 0, "star seed")
	r.Register("run", "open the scene window", runFS, func() error {
		*ran = "run"
		return nil
	})
	r.Register("config", "write the default config", flag.NewFlagSet("config", flag.ExitOnError), func() error {
		*ran = "config"
		return errors.New("disk full")
	})
	return r, ran, seed, &out
}

func TestExecute(t *testing.T) {
	tests := []struct {
		args     []string
		wantRan  string
		wantSeed int
		wantErr  string
	}{
		{nil, "run", 0, ""},
		{[]string{"-seed", "4"}, "run", 4, ""},
		{[]string{"run", "-seed=9"}, "run", 9, ""},
		{[]string{"config"}, "config", 0, "disk full"},
		{[]string{"explode"}, "", 0, "unknown command: explode"},
		{[]string{"run", "-nope"}, "", 0, "flag provided but not defined"},
	}
	for _, tt := range tests {
		r, ran, seed, _ := newTestRegistry(t)
		err := r.Execute(tt.args)
		if tt.wantErr == "" && err != nil {
			t.Errorf("Execute(%v) = %v", tt.args, err)
		}
		if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
			t.Errorf("Execute(%v) = %v, want error containing %q", tt.args, err, tt.wantErr)
		}
		if *ran != tt.wantRan || *seed != tt.wantSeed {
			t.Errorf("Execute(%v): ran %q seed %d, want %q %d", tt.args, *ran, *seed, tt.wantRan, tt.wantSeed)
		}
	}
}

func TestNoFallback(t *testing.T) {
	r := NewRegistry("", &bytes.Buffer{})
	if err := r.Execute(nil); err == nil {
		t.Error("Execute(nil) without fallback returned nil error")
	}
}

func TestHelp(t *testing.T) {
	r, _, _, out := newTestRegistry(t)
	if err := r.Execute([]string{"help"}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "config") || strings.Index(got, "config") > strings.Index(got, "run ") {
		t.Errorf("usage = %q", got)
	}
}
