package snapswap

import (
	"errors"

	"snapswap/internal/readslots"
)

//goland:noinspection GoUnusedGlobalVariable
var (
	ErrStoreClosed     = errors.New("store is closed")
	ErrSnapshotCorrupt = errors.New("snapshot checksum mismatch")
	ErrTooManyReaders  = readslots.ErrTooManyReaders
)
