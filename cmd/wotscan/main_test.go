package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/wotscan/internal/cli"
	"github.com/matzehuels/wotscan/pkg/observability"
)

func TestVerboseFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"completion", "bash"}, false},
		{[]string{"--verbose", "completion", "bash"}, true},
		{[]string{"-v", "analyze", "--reference"}, true},
	}
	for _, tt := range tests {
		t.Cleanup(observability.Reset)
		c := cli.New(&bytes.Buffer{}, cli.LogInfo)
		root := rootCommand(c)
		root.SetArgs(tt.args)
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if got := c.Logger.GetLevel() == cli.LogDebug; got != tt.want {
			t.Errorf("%v: debug logging = %v, want %v", tt.args, got, tt.want)
		}
	}
}
