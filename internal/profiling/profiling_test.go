package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()

	stop := Track("render.BuildCommands")
	time.Sleep(time.Millisecond)
	stop()

	Track("render.BuildCommands")() // zero-length section still records

	ss := Snapshot()
	if ss["render.BuildCommands"] <= 0 {
		t.Fatalf("section not recorded: %v", ss)
	}
}

func TestResetFrameClears(t *testing.T) {
	Track("render.Draw")()
	ResetFrame()
	if ss := Snapshot(); len(ss) != 0 {
		t.Fatalf("totals survive reset: %v", ss)
	}
}

func TestTopNOrdersBySpent(t *testing.T) {
	ResetFrame()

	stop := Track("slow.Section")
	time.Sleep(3 * time.Millisecond)
	stop()
	stop = Track("fast.Section")
	time.Sleep(time.Millisecond)
	stop()

	out := TopN(2)
	slow := strings.Index(out, "slow.Section")
	fast := strings.Index(out, "fast.Section")
	if slow < 0 || fast < 0 || slow > fast {
		t.Fatalf("TopN order wrong: %q", out)
	}

	if one := TopN(1); strings.Contains(one, "fast.Section") {
		t.Fatalf("TopN(1) must keep only the largest: %q", one)
	}
}
