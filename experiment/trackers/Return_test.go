package trackers

import (
	"path/filepath"
	"testing"
)

func TestReturnAccumulatesEpisodes(t *testing.T) {
	tracker := NewReturn("")

	tracker.Observe(0, 1, 2.5, nil)
	tracker.Observe(1, 0, -0.5, nil)
	tracker.EndEpisode()
	tracker.Observe(0, 0, 1, nil)
	tracker.EndEpisode()

	returns := tracker.Returns()
	if len(returns) != 2 {
		t.Fatalf("expected 2 episode returns, got %d", len(returns))
	}
	if returns[0] != 2.0 || returns[1] != 1.0 {
		t.Errorf("expected returns [2 1], got %v", returns)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	tracker := NewReturn(filename)

	tracker.Observe(0, 0, 3, nil)
	tracker.EndEpisode()
	tracker.Observe(0, 0, -1, nil)
	tracker.EndEpisode()
	tracker.Save()

	loaded := LoadReturns(filename)
	if len(loaded) != 2 || loaded[0] != 3 || loaded[1] != -1 {
		t.Errorf("expected loaded returns [3 -1], got %v", loaded)
	}
}
