package main

import (
	"context"
	"testing"

	"github.com/spencer-p/oceantrends/pkg/pipeline"
)

func TestConsumerCommands(t *testing.T) {
	for _, name := range pipeline.Consumers {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("no subcommand for consumer %q: %v", name, err)
		}
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()

	cfg = pipeline.DefaultConfig()
	cfg.Days = 0
	if err := run(context.Background(), pipeline.Trends); err == nil {
		t.Errorf("expected validation error")
	}

	cfg = pipeline.DefaultConfig()
	if err := run(context.Background(), "pie"); err == nil {
		t.Errorf("expected error for unknown consumer")
	}
}
