package ledger

import (
	"github.com/hmori/dopabalance/internal/model"
)

// EntriesFor returns the records keyed by the given real name, in stored order
func EntriesFor(records []Record, realName string) []Record {
	var out []Record
	for _, r := range records {
		if r.RealName == realName {
			out = append(out, r)
		}
	}
	return out
}

// Find locates the record for a (real_name, date) key
func Find(records []Record, realName string, date model.Date) (Record, bool) {
	for _, r := range records {
		if r.RealName == realName && r.Date == date {
			return r, true
		}
	}
	return Record{}, false
}

// IdentityOf derives the identity of record for a real name: the password
// digest, nickname and team that appeared on the identity's earliest
// surviving entry (earliest target date, stable order on ties).
func IdentityOf(records []Record, realName string) (model.Identity, bool) {
	var earliest *Record
	for i := range records {
		r := &records[i]
		if r.RealName != realName {
			continue
		}
		if earliest == nil || r.Date.Before(earliest.Date) {
			earliest = r
		}
	}
	if earliest == nil {
		return model.Identity{}, false
	}
	return earliest.Identity(), true
}

// SetDigest returns a new record set with the password digest stamped on
// every record for the real name. The identity of record derives its
// digest from the earliest surviving entry, so a credential claim has to
// reach all of an identity's records, not just the entry being written.
func SetDigest(records []Record, realName, digest string) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	for i := range out {
		if out[i].RealName == realName {
			out[i].PasswordDigest = digest
		}
	}
	return out
}

// Upsert returns a new record set with at most one record for the entry's
// (real_name, date) key: any existing record for that key is replaced,
// keeping whatever unrecognized fields it carried. Authorization is the
// Edit-Window Guard's job; Upsert performs none.
func Upsert(records []Record, entry model.Entry) []Record {
	out := make([]Record, 0, len(records)+1)
	rec := NewRecord(entry)
	for _, r := range records {
		if r.RealName == entry.RealName && r.Date == entry.Date {
			// Fields from schema versions this core does not know survive
			// a same-day correction
			rec.Extra = r.Extra
			continue
		}
		out = append(out, r)
	}
	out = append(out, rec)
	return out
}

// Erase returns a new record set with every record for the real name
// removed, and the number of records removed. All other records are
// untouched.
func Erase(records []Record, realName string) ([]Record, int) {
	out := make([]Record, 0, len(records))
	removed := 0
	for _, r := range records {
		if r.RealName == realName {
			removed++
			continue
		}
		out = append(out, r)
	}
	return out, removed
}
