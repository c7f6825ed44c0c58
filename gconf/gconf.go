/*
Package gconf provides a toolset for managing an extension
configuration. Each extension stores its configuration as a singleton
entity under a key derived from the package name.
*/
package gconf

import (
	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
)

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// ValidMarshaler is implemented by objects that can serialize
// themselves to a binary representation, after validation.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is implemented by objects that can load their state from
// given binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration combines serialization in both directions.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

// Save will Validate the object, before writing it to a special
// "configuration" singleton for that package name.
func Save(db accrue.KVStore, pkg string, src ValidMarshaler) error {
	key := dbKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	db.Set(key, raw)
	return nil
}

// Load reads the configuration singleton of the given package into
// dst. Returns ErrNotFound if no configuration was ever saved.
func Load(db accrue.ReadOnlyKVStore, pkg string, dst Unmarshaler) error {
	key := dbKey(pkg)
	raw := db.Get(key)
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given
// Configuration object, validate it, and store under the proper key in
// the database. Returns an error if anything goes wrong.
func InitConfig(db accrue.KVStore, opts accrue.Options, pkg string, conf Configuration) error {
	var confOptions accrue.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
