package stocks

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"
)

// The store persists snapshots durably. The engine itself never touches the
// filesystem; these functions wrap the codec with a preserve-previous write
// so a crash mid-write cannot destroy the last known-good snapshot.

// LoadSnapshotFile decodes the snapshot at path.
func LoadSnapshotFile(path string, class Class) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot %q: %w", path, err)
	}
	defer f.Close()

	ledger, err := DecodeSnapshot(f, class)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", path, err)
	}
	return ledger, nil
}

// LoadSnapshotFileOrEmpty decodes the snapshot at path, or returns an empty
// ledger when the file does not exist yet. Used by the recording wizard so a
// brand-new book needs no setup step.
func LoadSnapshotFileOrEmpty(path string, class Class) (*Ledger, error) {
	ledger, err := LoadSnapshotFile(path, class)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(class), nil
	}
	return ledger, err
}

// SaveSnapshotFile writes the ledger to path. An existing snapshot is first
// renamed aside to <path>.bak-<timestamp>, then the new file is written, so
// the previous state survives any failure in between.
func SaveSnapshotFile(path string, ledger *Ledger) error {
	if _, err := os.Stat(path); err == nil {
		backup := fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("cannot back up previous snapshot %q: %w", path, err)
		}
		log.Printf("backup-snapshot from=%q to=%q", path, backup)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create snapshot %q: %w", path, err)
	}
	defer f.Close()

	if err := EncodeSnapshot(f, ledger); err != nil {
		return fmt.Errorf("cannot write snapshot %q: %w", path, err)
	}
	log.Printf("write-snapshot name=%q positions=%d", path, ledger.Len())
	return nil
}
