package drip

import (
	"testing"

	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/accruetest"
	"github.com/iov-one/accrue/accruetest/assert"
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/store"
)

const testRate uint64 = 500000000

func newTestDB(t *testing.T, rate uint64) (accrue.CacheableKVStore, *Configuration) {
	t.Helper()
	db := store.MemStore()
	conf := Configuration{
		Admin:   accruetest.NewCondition().Address(),
		Minters: []accrue.Address{accruetest.NewCondition().Address()},
		Rate:    rate,
	}
	if err := saveConf(db, &conf); err != nil {
		t.Fatalf("cannot save configuration: %+v", err)
	}
	return db, &conf
}

func TestDepositLocksProtocolRate(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, holder, 1000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	rate, err := control.HolderRate(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, testRate, rate)

	principal, err := control.Principal(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), principal)
}

func TestDepositAlwaysRelocksRate(t *testing.T) {
	// Unlike transfers, every deposit adopts the latest protocol
	// rate, even when the destination already holds a balance.
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, holder, 1000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	if err := control.UpdateRate(db, testRate/2); err != nil {
		t.Fatalf("cannot lower rate: %+v", err)
	}
	if err := control.Deposit(db, 200, holder, 1); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	rate, err := control.HolderRate(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, testRate/2, rate)
}

func TestBalanceAccruesLinearly(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	// 1e12 principal at rate 5e8 earns 5e8 * 1e12 / 1e18 = 500 per
	// second.
	if err := control.Deposit(db, 100, holder, 1000000000000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	balance, err := control.Balance(db, 100, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000000000), balance)

	balance, err = control.Balance(db, 1100, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000500000), balance)

	// the balance read must not have mutated durable state
	principal, err := control.Principal(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000000000), principal)
}

func TestSettleIsIdempotent(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, holder, 1000000000000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	first, err := control.settle(db, 1100, holder)
	assert.Nil(t, err)
	if err := control.accounts.Put(db, holder, first); err != nil {
		t.Fatalf("cannot save: %+v", err)
	}

	second, err := control.settle(db, 1100, holder)
	assert.Nil(t, err)
	assert.Equal(t, first.Principal, second.Principal)
}

func TestUpdateRateOnlyDecreases(t *testing.T) {
	cases := map[string]struct {
		current uint64
		next    uint64
		wantErr *errors.Error
	}{
		"lower value accepted": {
			current: testRate,
			next:    testRate - 1,
		},
		"equal value rejected": {
			current: testRate,
			next:    testRate,
			wantErr: ErrRateIncrease,
		},
		"higher value rejected": {
			current: testRate,
			next:    testRate + 1,
			wantErr: ErrRateIncrease,
		},
		"zero accepted, no floor": {
			current: testRate,
			next:    0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, _ := newTestDB(t, tc.current)
			control := NewController()

			err := control.UpdateRate(db, tc.next)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
				// a failed update leaves the rate untouched
				rate, err := control.ProtocolRate(db)
				assert.Nil(t, err)
				assert.Equal(t, tc.current, rate)
				return
			}
			assert.Nil(t, err)
			rate, err := control.ProtocolRate(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.next, rate)
		})
	}
}

func TestRateUpdateKeepsExistingHolders(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, holder, 1000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	if err := control.UpdateRate(db, testRate/5); err != nil {
		t.Fatalf("cannot lower rate: %+v", err)
	}

	rate, err := control.HolderRate(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, testRate, rate)
}

func TestMoveConservesTotal(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	alice := accruetest.NewCondition().Address()
	bob := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, alice, 1000000000000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	if err := control.Deposit(db, 100, bob, 500000000000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	sumBefore := balanceSum(t, control, db, 1100, alice, bob)

	if _, err := control.Move(db, 1100, alice, bob, 300, false); err != nil {
		t.Fatalf("cannot move: %+v", err)
	}

	sumAfter := balanceSum(t, control, db, 1100, alice, bob)
	assert.Equal(t, sumBefore, sumAfter)
}

func TestMoveAdoptsRateOnZeroBalance(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	alice := accruetest.NewCondition().Address()
	bob := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, alice, 50); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	// bob never held anything, he adopts alice's locked rate
	if _, err := control.Move(db, 100, alice, bob, 0, true); err != nil {
		t.Fatalf("cannot move: %+v", err)
	}

	rate, err := control.HolderRate(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, testRate, rate)

	// alice is drained and back to dormant
	balance, err := control.Balance(db, 100, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestMoveKeepsRateOnActiveRecipient(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	alice := accruetest.NewCondition().Address()
	bob := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, bob, 10); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	if err := control.UpdateRate(db, testRate/2); err != nil {
		t.Fatalf("cannot lower rate: %+v", err)
	}
	if err := control.Deposit(db, 100, alice, 100); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	// bob holds a balance, his locked rate survives the transfer
	if _, err := control.Move(db, 100, alice, bob, 40, false); err != nil {
		t.Fatalf("cannot move: %+v", err)
	}

	rate, err := control.HolderRate(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, testRate, rate)
}

func TestDormantHolderAdoptsNewRate(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	alice := accruetest.NewCondition().Address()
	bob := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, alice, 100); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	// bob enters at a lower rate than alice
	if err := control.UpdateRate(db, testRate/2); err != nil {
		t.Fatalf("cannot lower rate: %+v", err)
	}
	if err := control.Deposit(db, 100, bob, 10); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	// drain bob, he is dormant again
	if _, err := control.Withdraw(db, 100, bob, 0, true); err != nil {
		t.Fatalf("cannot withdraw: %+v", err)
	}

	// the next inbound transfer re-assigns bob's rate
	if _, err := control.Move(db, 100, alice, bob, 30, false); err != nil {
		t.Fatalf("cannot move: %+v", err)
	}
	rate, err := control.HolderRate(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, testRate, rate)
}

func TestWithdrawAll(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, holder, 1000000000000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	// burn-all includes the interest accrued until now
	burned, err := control.Withdraw(db, 1100, holder, 0, true)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000000500000), burned)

	balance, err := control.Balance(db, 1100, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, holder, 10); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}

	if _, err := control.Withdraw(db, 100, holder, 11, false); !ErrInsufficientFunds.Is(err) {
		t.Fatalf("want insufficient funds, got %+v", err)
	}
	// the failed withdrawal did not touch the principal
	principal, err := control.Principal(db, holder)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), principal)
}

func TestMoveInsufficientFunds(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	alice := accruetest.NewCondition().Address()
	bob := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, alice, 10); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	if _, err := control.Move(db, 100, alice, bob, 11, false); !ErrInsufficientFunds.Is(err) {
		t.Fatalf("want insufficient funds, got %+v", err)
	}
}

func TestMoveFromChargesAllowance(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	alice := accruetest.NewCondition().Address()
	bob := accruetest.NewCondition().Address()
	carl := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, alice, 1000); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	if err := control.Approve(db, alice, carl, 300); err != nil {
		t.Fatalf("cannot approve: %+v", err)
	}

	if _, err := control.MoveFrom(db, 100, carl, alice, bob, 200, false); err != nil {
		t.Fatalf("cannot move: %+v", err)
	}

	granted, err := control.Allowance(db, alice, carl)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), granted)

	// the remaining grant does not cover another 200
	if _, err := control.MoveFrom(db, 100, carl, alice, bob, 200, false); !ErrInsufficientAllowance.Is(err) {
		t.Fatalf("want insufficient allowance, got %+v", err)
	}
}

func TestMoveToSelfRejected(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	alice := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, alice, 10); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	if _, err := control.Move(db, 100, alice, alice, 5, false); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestBalanceBeforeSettlementRejected(t *testing.T) {
	db, _ := newTestDB(t, testRate)
	control := NewController()
	holder := accruetest.NewCondition().Address()

	if err := control.Deposit(db, 100, holder, 10); err != nil {
		t.Fatalf("cannot deposit: %+v", err)
	}
	// the clock must never move backwards
	if _, err := control.Balance(db, 99, holder); !errors.ErrState.Is(err) {
		t.Fatalf("want state error, got %+v", err)
	}
}

func balanceSum(t *testing.T, control Controller, db accrue.ReadOnlyKVStore, now accrue.UnixTime, holders ...accrue.Address) uint64 {
	t.Helper()
	var sum uint64
	for _, h := range holders {
		b, err := control.Balance(db, now, h)
		if err != nil {
			t.Fatalf("cannot read balance: %+v", err)
		}
		sum += b
	}
	return sum
}
