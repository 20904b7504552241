// Package filekv persists each collection as a JSON file under a data
// directory. Writes go through a temp file and rename so a crash never
// leaves a half-written collection behind.
package filekv

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"madaris/core"
)

type backend struct {
	dir string
}

var _ core.Backend = (*backend)(nil)

func NewBackend(dir string) (core.Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %s", dir)
	}
	return &backend{dir: dir}, nil
}

func (b *backend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *backend) ReadCollection(name string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(b.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", b.path(name))
	}

	var recs []json.RawMessage
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", b.path(name))
	}
	return recs, nil
}

func (b *backend) WriteCollection(name string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	return errors.Wrapf(os.Rename(tmp.Name(), b.path(name)), "replacing %s", b.path(name))
}
