package drip

import (
	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/gconf"
)

// pkgName is the name this extension registers its configuration
// under.
const pkgName = "drip"

// Configuration is the protocol wide state of this extension.
type Configuration struct {
	// Admin is the only address allowed to lower the protocol rate.
	Admin accrue.Address `json:"admin"`
	// Minters are the addresses allowed to deposit and withdraw,
	// usually the vault that holds the collateral.
	Minters []accrue.Address `json:"minters"`
	// Rate is the current protocol wide interest rate, locked in by
	// every deposit. It can only decrease over the lifetime of the
	// system.
	Rate uint64 `json:"rate"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if len(c.Minters) == 0 {
		return errors.Wrap(errors.ErrEmpty, "minters")
	}
	for i, m := range c.Minters {
		if err := m.Validate(); err != nil {
			return errors.Wrapf(err, "minter #%d", i)
		}
	}
	return nil
}

// IsMinter returns true if the given address is on the minter allow
// list.
func (c *Configuration) IsMinter(addr accrue.Address) bool {
	for _, m := range c.Minters {
		if m.Equals(addr) {
			return true
		}
	}
	return false
}

func loadConf(db accrue.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, pkgName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

func saveConf(db accrue.KVStore, conf *Configuration) error {
	if err := gconf.Save(db, pkgName, conf); err != nil {
		return errors.Wrap(err, "save configuration")
	}
	return nil
}
