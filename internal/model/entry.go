package model

// Identity represents a human user keyed by their real name. The password
// digest, nickname and team are identity facts fixed by the earliest
// surviving ledger entry, not mutable preferences.
type Identity struct {
	RealName       string
	PasswordDigest string
	Nickname       string
	Team           string
}

// Entry is one calendar day's scoring record for one identity.
// The composite key is (RealName, Date). EntryDate is the day the entry was
// created and is the authorization clock for corrections: once EntryDate is
// in the past the entry is frozen except via whole-account erasure.
type Entry struct {
	RealName       string
	PasswordDigest string
	Nickname       string
	Team           string
	Date           Date
	Points         float64
	EntryDate      Date
}

// Identity returns the identity facts snapshotted on the entry
func (e Entry) Identity() Identity {
	return Identity{
		RealName:       e.RealName,
		PasswordDigest: e.PasswordDigest,
		Nickname:       e.Nickname,
		Team:           e.Team,
	}
}

// Resolution classifies a login attempt against the existing ledger
type Resolution string

const (
	// ResolutionNew means no entries exist for the real name; whatever
	// credentials were supplied become of-record on the first save
	ResolutionNew Resolution = "new"
	// ResolutionReturningOK means password, nickname and team all match
	ResolutionReturningOK Resolution = "returning"
	// ResolutionAuthFailed means the password does not match
	ResolutionAuthFailed Resolution = "auth_failed"
	// ResolutionProfileMismatch means the password matches but nickname or
	// team disagree with the identity of record
	ResolutionProfileMismatch Resolution = "profile_mismatch"
)

// EditDecision is the Edit-Window Guard's verdict for a (identity, date) slot
type EditDecision string

const (
	EditAllowCreate      EditDecision = "allow_create"
	EditAllowEdit        EditDecision = "allow_edit"
	EditDenyPassword     EditDecision = "deny_password"
	EditDenyWindowClosed EditDecision = "deny_window_closed"
)

// Allowed reports whether the decision permits the write
func (d EditDecision) Allowed() bool {
	return d == EditAllowCreate || d == EditAllowEdit
}
