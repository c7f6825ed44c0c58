package drip

import (
	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ accrue.Initializer = (*Initializer)(nil)

// FromGenesis will parse the initial configuration and account info
// from genesis and save it to the database.
func (Initializer) FromGenesis(opts accrue.Options, db accrue.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, pkgName, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accounts []struct {
		Address   accrue.Address  `json:"address"`
		Principal uint64          `json:"principal"`
		SettledAt accrue.UnixTime `json:"settled_at"`
	}
	if err := opts.ReadOptions("drip", &accounts); err != nil {
		return errors.Wrap(err, "read genesis accounts")
	}

	bucket := NewAccountBucket()
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d address", i)
		}
		if a.Principal > 0 && a.SettledAt.IsZero() {
			return errors.Wrapf(errors.ErrInput, "account #%d missing settlement time", i)
		}
		acc := Account{
			Principal: a.Principal,
			Rate:      conf.Rate,
			SettledAt: a.SettledAt,
		}
		if err := bucket.Put(db, a.Address, &acc); err != nil {
			return errors.Wrapf(err, "save account #%d", i)
		}
	}
	return nil
}
