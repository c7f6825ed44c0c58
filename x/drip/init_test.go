package drip

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/accruetest"
	"github.com/iov-one/accrue/accruetest/assert"
	"github.com/iov-one/accrue/store"
)

func TestGenesisInit(t *testing.T) {
	admin := accruetest.NewCondition().Address()
	minter := accruetest.NewCondition().Address()
	holder := accruetest.NewCondition().Address()

	genesis := fmt.Sprintf(`{
		"conf": {
			"drip": {
				"admin": %q,
				"minters": [%q],
				"rate": 500000000
			}
		},
		"drip": [
			{"address": %q, "principal": 1000, "settled_at": 1234567890}
		]
	}`, admin, minter, holder)

	var opts accrue.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	control := NewController()

	rate, err := control.ProtocolRate(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500000000), rate)

	principal, err := control.Principal(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), principal)

	locked, err := control.HolderRate(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500000000), locked)
}

func TestGenesisInitRequiresSettlementTime(t *testing.T) {
	admin := accruetest.NewCondition().Address()
	minter := accruetest.NewCondition().Address()
	holder := accruetest.NewCondition().Address()

	genesis := fmt.Sprintf(`{
		"conf": {
			"drip": {
				"admin": %q,
				"minters": [%q],
				"rate": 500000000
			}
		},
		"drip": [
			{"address": %q, "principal": 1000}
		]
	}`, admin, minter, holder)

	var opts accrue.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	if err := ini.FromGenesis(opts, db); err == nil {
		t.Fatal("expected an error for a missing settlement time")
	}
}
