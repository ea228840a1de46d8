package rotation

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rallt/Quantum-maze/pkg/kdf"
	"github.com/Rallt/Quantum-maze/pkg/logging"
	"github.com/Rallt/Quantum-maze/pkg/navigator"
)

// goldenRecord pins the observable outputs of a fixed-input engine run.
// The file is captured on the first run and every later run must
// reproduce it exactly; any drift in generation, search, or derivation
// breaks the cross-version determinism the engine promises.
type goldenRecord struct {
	MazeFingerprint  string   `json:"maze_fingerprint"`
	PathLength       int      `json:"path_length"`
	DirectionChanges int      `json:"direction_changes"`
	KeyFingerprints  []string `json:"key_fingerprints"`
}

// TestScheduler_GoldenRun locks the deterministic pipeline across windows
func TestScheduler_GoldenRun(t *testing.T) {
	cfg := SchedulerConfig{
		MazeSize:         6,
		Level:            navigator.Low,
		WindowDuration:   time.Minute,
		ExtraEdgeDensity: 0.1,
	}
	s, err := New(cfg, WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Terminate()

	master, err := kdf.NewMasterSecret(bytes.Repeat([]byte{0x5a}, 32))
	if err != nil {
		t.Fatalf("NewMasterSecret failed: %v", err)
	}

	now := time.Unix(1_700_000_000, 0)
	if err := s.Start(testSeed(0xd1), master, now); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	got := goldenRecord{
		MazeFingerprint:  s.Status().MazeFingerprint,
		PathLength:       s.Status().PathLength,
		DirectionChanges: s.Status().DirectionChanges,
	}
	key, _ := s.CurrentKey()
	got.KeyFingerprints = append(got.KeyFingerprints, kdf.KeyFingerprint(key))

	for i := 0; i < 3; i++ {
		now = now.Add(2 * time.Minute)
		if _, err := s.Tick(now); err != nil {
			t.Fatalf("Rotation %d failed: %v", i+1, err)
		}
		key, _ := s.CurrentKey()
		got.KeyFingerprints = append(got.KeyFingerprints, kdf.KeyFingerprint(key))
	}

	goldenPath := filepath.Join("testdata", "golden_run.json")
	data, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		out, merr := json.MarshalIndent(got, "", "  ")
		if merr != nil {
			t.Fatalf("Failed to marshal golden record: %v", merr)
		}
		if merr := os.MkdirAll(filepath.Dir(goldenPath), 0o755); merr != nil {
			t.Fatalf("Failed to create testdata dir: %v", merr)
		}
		if merr := os.WriteFile(goldenPath, out, 0o644); merr != nil {
			t.Fatalf("Failed to write golden record: %v", merr)
		}
		t.Logf("Captured golden record at %s", goldenPath)
		return
	}
	if err != nil {
		t.Fatalf("Failed to read golden record: %v", err)
	}

	var want goldenRecord
	if err := json.Unmarshal(data, &want); err != nil {
		t.Fatalf("Failed to parse golden record: %v", err)
	}

	if got.MazeFingerprint != want.MazeFingerprint {
		t.Errorf("Maze fingerprint drifted: got %s, want %s", got.MazeFingerprint, want.MazeFingerprint)
	}
	if got.PathLength != want.PathLength {
		t.Errorf("Path length drifted: got %d, want %d", got.PathLength, want.PathLength)
	}
	if got.DirectionChanges != want.DirectionChanges {
		t.Errorf("Direction changes drifted: got %d, want %d", got.DirectionChanges, want.DirectionChanges)
	}
	if len(got.KeyFingerprints) != len(want.KeyFingerprints) {
		t.Fatalf("Fingerprint count drifted: got %d, want %d", len(got.KeyFingerprints), len(want.KeyFingerprints))
	}
	for i := range want.KeyFingerprints {
		if got.KeyFingerprints[i] != want.KeyFingerprints[i] {
			t.Errorf("Window %d key fingerprint drifted: got %s, want %s",
				i, got.KeyFingerprints[i], want.KeyFingerprints[i])
		}
	}
}
