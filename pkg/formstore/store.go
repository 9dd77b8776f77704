package formstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Store persists form snapshots by id.
type Store interface {
	Save(ctx context.Context, s form.Snapshot) error
	Get(ctx context.Context, id string) (form.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

func check(s form.Snapshot) error {
	if s.ID == "" {
		return errors.Join(ErrInvalidSnapshot, errors.New("empty id"))
	}
	if s.FormName == "" {
		return errors.Join(ErrInvalidSnapshot, errors.New("empty form name"))
	}
	return nil
}

func encode(s form.Snapshot) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Join(ErrInvalidSnapshot, err)
	}
	return b, nil
}

func decode(b []byte) (form.Snapshot, error) {
	var s form.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return form.Snapshot{}, errors.Join(ErrInvalidSnapshot, err)
	}
	return s, nil
}
