package formstore

import "errors"

var (
	ErrSnapshotNotFound = errors.New("formstore: snapshot not found")
	ErrInvalidSnapshot  = errors.New("formstore: invalid snapshot")
	ErrStoreFailed      = errors.New("formstore: storage operation failed")
)
