package rowcount

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"
	log "github.com/sirupsen/logrus"
	"github.com/squareup/hkcost/errors"
)

var (
	rowCountPrefix  = []byte("rc/")
	rowCountEnd     = []byte("rc0") // '0' sorts immediately after '/'
	syncWriteOption = pebble.Sync
)

// Store persists table row counts in Pebble. Counts are written by whatever collects statistics and read back as
// a Static snapshot before a planning pass starts, so no costing call ever touches the disk.
type Store struct {
	dir    string
	pebble *pebble.DB
}

func OpenStore(dir string) (*Store, error) {
	peb, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Debugf("Opened row count store in %s", dir)
	return &Store{dir: dir, pebble: peb}, nil
}

// PutAll writes the counts in a single synced batch.
func (s *Store) PutAll(counts map[string]int64) error {
	batch := s.pebble.NewBatch()
	for name, count := range counts {
		if count < 0 {
			_ = batch.Close()
			return errors.NewInvalidConfigurationError(fmt.Sprintf("row count for %s must be >= 0", name))
		}
		if err := batch.Set(encodeKey(name), encodeCount(count), nil); err != nil {
			_ = batch.Close()
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(s.pebble.Apply(batch, syncWriteOption))
}

func (s *Store) Put(tableName string, count int64) error {
	return s.PutAll(map[string]int64{tableName: count})
}

func (s *Store) Delete(tableName string) error {
	return errors.WithStack(s.pebble.Delete(encodeKey(tableName), syncWriteOption))
}

// Get returns the stored count and whether one was found.
func (s *Store) Get(tableName string) (int64, bool, error) {
	v, closer, err := s.pebble.Get(encodeKey(tableName))
	if err == pebble.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.WithStack(err)
	}
	defer closer.Close() //nolint:errcheck
	count, err := decodeCount(v)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// Snapshot reads every stored count into memory.
func (s *Store) Snapshot() (Static, error) {
	iter := s.pebble.NewIter(&pebble.IterOptions{LowerBound: rowCountPrefix, UpperBound: rowCountEnd})
	counts := make(Static)
	for iter.First(); iter.Valid(); iter.Next() {
		name := string(iter.Key()[len(rowCountPrefix):])
		count, err := decodeCount(iter.Value())
		if err != nil {
			_ = iter.Close()
			return nil, errors.Wrapf(err, "row count for %s", name)
		}
		counts[name] = count
	}
	if err := iter.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	log.Debugf("Loaded %d row counts from %s", len(counts), s.dir)
	return counts, nil
}

func (s *Store) Close() error {
	return errors.WithStack(s.pebble.Close())
}

func encodeKey(tableName string) []byte {
	key := make([]byte, 0, len(rowCountPrefix)+len(tableName))
	key = append(key, rowCountPrefix...)
	return append(key, tableName...)
}

func encodeCount(count int64) []byte {
	buff := make([]byte, 8)
	binary.BigEndian.PutUint64(buff, uint64(count))
	return buff
}

func decodeCount(v []byte) (int64, error) {
	if len(v) != 8 {
		return 0, errors.Errorf("row count value has %d bytes, expected 8", len(v))
	}
	return int64(binary.BigEndian.Uint64(v)), nil
}
