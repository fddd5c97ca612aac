package domain

import (
	"fmt"
	"log/slog"

	"shsplit.dev/pkg/shsplit/internal/adapter"
	m "shsplit.dev/pkg/shsplit/internal/model"
)

// BackupSuffix is appended to the module path to form its backup sibling.
const BackupSuffix = ".bak"

// BackupPath returns the deterministic sibling path the original module is
// copied to before it is overwritten.
func BackupPath(module m.Path) m.Path {
	return module + BackupSuffix
}

// BackupManager copies the original module aside before any overwrite.
type BackupManager struct {
	fs adapter.SourceFSAdapter
}

// NewBackupManager constructs a BackupManager backed by the provided
// filesystem adapter.
func NewBackupManager(fs adapter.SourceFSAdapter) *BackupManager {
	return &BackupManager{fs: fs}
}

// Backup copies the on-disk module verbatim to its sibling backup path and
// returns that path. It must succeed before the overwrite step runs; a
// failed copy aborts the whole operation with no destructive write.
func (b *BackupManager) Backup(module m.Path) (m.Path, error) {
	target := BackupPath(module)

	if err := b.fs.CopyFile(module, target); err != nil {
		slog.Error("failed to back up module", "module", module, "target", target, "error", err)
		return "", fmt.Errorf("back up module before rewrite: %w", err)
	}

	slog.Debug("backed up module", "module", module, "target", target)

	return target, nil
}
