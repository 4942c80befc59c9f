package stocks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveSnapshotFile_BacksUpPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holdings.csv")

	ledger := NewLedger(Equity)
	if err := ledger.Apply(buyOp(t, "AAA", "10", "100", "CAD")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := SaveSnapshotFile(path, ledger); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	if err := ledger.Apply(sellOp(t, "AAA", "5", "120", "CAD")); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if err := SaveSnapshotFile(path, ledger); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var backups []string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "holdings.csv.bak-") {
			backups = append(backups, f.Name())
		}
	}
	if len(backups) != 1 {
		t.Fatalf("got backups %v, want exactly one", backups)
	}

	// The backup holds the previous state, the snapshot the new one.
	prev, err := LoadSnapshotFile(filepath.Join(dir, backups[0]), Equity)
	if err != nil {
		t.Fatalf("cannot load backup: %v", err)
	}
	p, _ := prev.Position("AAA")
	if got := p.Quantity.String(); got != "10.000000" {
		t.Errorf("backup quantity = %s, want 10.000000", got)
	}

	cur, err := LoadSnapshotFile(path, Equity)
	if err != nil {
		t.Fatalf("cannot load snapshot: %v", err)
	}
	p, _ = cur.Position("AAA")
	if got := p.Quantity.String(); got != "5.000000" {
		t.Errorf("snapshot quantity = %s, want 5.000000", got)
	}
}

func TestLoadSnapshotFileOrEmpty(t *testing.T) {
	ledger, err := LoadSnapshotFileOrEmpty(filepath.Join(t.TempDir(), "absent.csv"), Crypto)
	if err != nil {
		t.Fatalf("LoadSnapshotFileOrEmpty failed: %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("got %d positions, want 0", ledger.Len())
	}
	if ledger.Class() != Crypto {
		t.Errorf("class = %v, want crypto", ledger.Class())
	}
}
