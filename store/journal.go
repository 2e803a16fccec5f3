package store

import (
	"os"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
)

// Entry is the outcome of one search run from the command line
type Entry struct {
	ID      []byte        `msgpack:"id"`
	Time    time.Time     `msgpack:"time"`
	Command string        `msgpack:"command"`
	URL     string        `msgpack:"url"`
	Locator string        `msgpack:"locator"`
	Options string        `msgpack:"options"`
	Elapsed time.Duration `msgpack:"elapsed"`
	Found   int           `msgpack:"found"`
	Result  bool          `msgpack:"result"`
	Error   string        `msgpack:"error"`
}

// UUID of the entry, zero if it was never recorded
func (e *Entry) UUID() uuid.UUID {
	return uuid.FromBytesOrNil(e.ID)
}

// Journal of search outcomes
type Journal struct {
	Store    *badger.DB
	filepath string
}

// NewJournal at filepath
func NewJournal(filepath string) *Journal {
	return &Journal{filepath: filepath}
}

// Init the journal store
func (j *Journal) Init() error {
	var err error

	if err = os.MkdirAll(j.filepath, 0700); err != nil {
		return err
	}

	j.Store, err = badger.Open(badger.DefaultOptions(j.filepath).WithLogger(nil))
	return errors.Wrap(err, "open journal")
}

// Record entry, assigning it an id and time if unset
func (j *Journal) Record(entry *Entry) error {
	if len(entry.ID) == 0 {
		entry.ID = uuid.NewV4().Bytes()
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}

	bytez, err := EncodeEntry(entry)
	if err != nil {
		return errors.Wrap(err, "encode entry")
	}

	return j.Store.Update(func(txn *badger.Txn) error {
		// key = entry:<id>, value = msgpack'd entry
		return txn.Set(MakeKey(entry.ID, entryPredicate), bytez)
	})
}

// Entries ordered by time, at most limit of the most recent when limit > 0
func (j *Journal) Entries(limit int) ([]*Entry, error) {
	entries := make([]*Entry, 0)
	err := j.Store.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := MakeKey(nil, entryPredicate)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if string(GetPredicate(item.Key())) != entryPredicate {
				continue
			}
			err := item.Value(func(val []byte) error {
				entry, err := DecodeEntry(val)
				if err != nil {
					return err
				}
				if len(entry.ID) == 0 {
					entry.ID = GetID(item.KeyCopy(nil))
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				log.Error().Err(err).Str("key", string(item.Key())).Msg("failed to decode entry")
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Time.Before(entries[b].Time)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Close the journal store
func (j *Journal) Close() error {
	if j.Store == nil {
		return nil
	}
	return j.Store.Close()
}
