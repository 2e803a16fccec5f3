package store

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v4"
)

const entryPredicate = "entry"

// MakeKey of a predicate and id
func MakeKey(id []byte, predicate string) []byte {
	key := []byte(predicate)
	key = append(key, byte(':'))
	key = append(key, id...)
	return key
}

// GetID of key from a pred:key
func GetID(key []byte) []byte {
	split := bytes.SplitN(key, []byte(":"), 2)
	if len(split) == 1 {
		return []byte{}
	}
	return split[1]
}

// GetPredicate from pred:key
func GetPredicate(key []byte) []byte {
	split := bytes.SplitN(key, []byte(":"), 2)
	return split[0]
}

// EncodeEntry into a msgpack []byte slice
func EncodeEntry(entry *Entry) ([]byte, error) {
	return msgpack.Marshal(entry)
}

// DecodeEntry from msgpack
func DecodeEntry(val []byte) (*Entry, error) {
	entry := &Entry{}
	if err := msgpack.Unmarshal(val, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
