package entry

import (
	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
)

// BackfillDays is how many days back a missing entry may still be created.
// Creation is windowed on the target date; correction is windowed on the
// entry's creation day (see Authorize).
const BackfillDays = 2

// Authorize decides whether the (identity, date) slot may be written.
//
// An absent slot may always be created. A present entry requires the
// claimed digest to match the entry's credential snapshot, and is only
// correctable while its creation day is still today: the authorization
// clock is entry_date, not the target date, so a backfilled entry saved
// yesterday is already frozen even though its target date is within the
// backfill window. This stops retroactive score inflation after rankings
// have been observed.
func Authorize(existing *ledger.Record, claimedDigest string, today model.Date) model.EditDecision {
	if existing == nil {
		return model.EditAllowCreate
	}
	if existing.PasswordDigest != "" && existing.PasswordDigest != claimedDigest {
		return model.EditDenyPassword
	}
	if existing.EntryDate == today {
		return model.EditAllowEdit
	}
	return model.EditDenyWindowClosed
}

// validTargetDate checks the target date against the allowed entry window
// [today - BackfillDays, today].
func validTargetDate(date, today model.Date) bool {
	return !date.Before(today.AddDays(-BackfillDays)) && !today.Before(date)
}
