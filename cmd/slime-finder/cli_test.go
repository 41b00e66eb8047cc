package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/slime-finder/internal/config"
	"github.com/ironsheep/slime-finder/internal/report"
	"github.com/ironsheep/slime-finder/internal/seeds"
	"github.com/ironsheep/slime-finder/internal/world"
)

// scanTestCmd returns a fresh command carrying the scan and search flags.
func scanTestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	addScanFlags(cmd)
	cmd.Flags().IntVar(&workers, "workers", 1, "")
	cmd.Flags().Int64Var(&maxSeeds, "max-seeds", 0, "")
	cmd.Flags().Int64SliceVar(&seedList, "seeds", nil, "")
	cmd.Flags().Int64Var(&seedStart, "seed-start", 0, "")
	cmd.Flags().Int64Var(&seedStep, "seed-step", 1, "")
	cmd.Flags().Int64Var(&seedCount, "seed-count", 0, "")
	cmd.Flags().Uint64Var(&rngSeed, "rng-seed", 0, "")
	return cmd
}

func TestApplyFlags(t *testing.T) {
	cmd := scanTestCmd()
	if err := cmd.Flags().Parse([]string{"--half-width", "100", "--min-size", "20", "--rectangles-only=false", "--workers", "3"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	c := config.DefaultConfig()
	c.Search.Step = 4 // from a config file; no flag given
	if err := applyFlags(cmd, c); err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}

	if c.Search.HalfWidth != 100 || c.Search.MinSize != 20 || c.Search.RectanglesOnly || c.Search.Workers != 3 {
		t.Errorf("flags not applied: %+v", c.Search)
	}
	if c.Search.Step != 4 {
		t.Errorf("unset flag overrode config: step %d", c.Search.Step)
	}
}

func TestApplyFlags_Invalid(t *testing.T) {
	cmd := scanTestCmd()
	if err := cmd.Flags().Parse([]string{"--step", "0"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := applyFlags(cmd, config.DefaultConfig()); err == nil {
		t.Error("expected validation error")
	}
}

func TestSeedSource(t *testing.T) {
	tests := []struct {
		args []string
		want []int64
	}{
		{[]string{"--seeds", "5,-7,9"}, []int64{5, -7, 9}},
		{[]string{"--seed-start", "10", "--seed-step", "5", "--seed-count", "3"}, []int64{10, 15, 20}},
	}

	for _, tt := range tests {
		seedList = nil
		cmd := scanTestCmd()
		if err := cmd.Flags().Parse(tt.args); err != nil {
			t.Fatalf("Parse(%v) failed: %v", tt.args, err)
		}

		src := seedSource(cmd)
		var got []int64
		for {
			v, err := src.Next()
			if err == seeds.ErrExhausted {
				break
			}
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			got = append(got, v)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%v: got %v, want %v", tt.args, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v: got %v, want %v", tt.args, got, tt.want)
				break
			}
		}
	}
	seedList = nil
}

func TestBuildSink_Console(t *testing.T) {
	var out bytes.Buffer
	rc := config.DefaultReportConfig()
	rc.Async = true

	sink, closeSink := buildSink(rc, &out, zap.NewNop())
	rec := report.NewRecord(3, world.Coord{X: 1, Z: 2}, []world.Coord{{X: 1, Z: 2}}, 1)
	if err := sink.Report(context.Background(), rec); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if err := closeSink(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if !strings.Contains(out.String(), "Seed: 3\n") || !strings.Contains(out.String(), "Coordinates: (16, 32)") {
		t.Errorf("console output: %q", out.String())
	}
}

func TestRunMap(t *testing.T) {
	logger = zap.NewNop()
	defer func() { mapX, mapZ, mapRadius, mapASCII, mapPNG = 0, 0, 16, false, "" }()

	path := filepath.Join(t.TempDir(), "map.png")
	mapX, mapZ, mapRadius, mapASCII, mapPNG = 0, -1, 2, true, path

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	if err := runMap(cmd, []string{"0"}); err != nil {
		t.Fatalf("runMap failed: %v", err)
	}

	if !strings.HasPrefix(out.String(), "x -2..2\n-3 . . . # # \n") {
		t.Errorf("map output: %q", out.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("PNG not written: %v", err)
	}

	if err := runMap(cmd, []string{"not-a-seed"}); err == nil {
		t.Error("expected error for invalid seed")
	}

	mapX, mapPNG = 2147483600, ""
	out.Reset()
	if err := runMap(cmd, []string{"0"}); err == nil {
		t.Error("expected error for a centre beyond the coordinate range")
	}
	if out.Len() != 0 {
		t.Errorf("rejected window still printed %q", out.String())
	}
}

func TestParseSeeds(t *testing.T) {
	got, err := parseSeeds([]string{"-8301357846524185845", "0", "42"})
	if err != nil {
		t.Fatalf("parseSeeds failed: %v", err)
	}
	if len(got) != 3 || got[0] != -8301357846524185845 || got[2] != 42 {
		t.Errorf("got %v", got)
	}
	if _, err := parseSeeds([]string{"1.5"}); err == nil {
		t.Error("expected error for non-integer seed")
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	if !strings.HasPrefix(out.String(), "slime-finder "+Version+"\n") {
		t.Errorf("version output: %q", out.String())
	}
}
