package ledger

import (
	"encoding/json"

	"github.com/hmori/dopabalance/internal/model"
)

// Record is one stored ledger row. The schema has drifted over the
// system's life (pseudonym-only keys, later a derived cumulative column),
// so unknown fields are preserved verbatim in Extra and written back
// untouched, and missing fields are default-filled on read.
type Record struct {
	model.Entry

	// Extra holds fields this version of the core does not recognize
	Extra map[string]json.RawMessage
}

// NewRecord wraps an entry as a record with no extra fields
func NewRecord(e model.Entry) Record {
	return Record{Entry: e}
}

// Known field names in the stored JSON form
const (
	fieldRealName       = "real_name"
	fieldPasswordDigest = "password_digest"
	fieldNickname       = "nickname"
	fieldTeam           = "team"
	fieldDate           = "date"
	fieldPoints         = "points"
	fieldEntryDate      = "entry_date"

	// legacyFieldUserID was the key of the pseudonym-only schema; it doubled
	// as both identifier and display name
	legacyFieldUserID = "user_id"
)

type recordFields struct {
	RealName       string     `json:"real_name,omitempty"`
	UserID         string     `json:"user_id,omitempty"`
	PasswordDigest string     `json:"password_digest,omitempty"`
	Nickname       string     `json:"nickname,omitempty"`
	Team           string     `json:"team,omitempty"`
	Date           model.Date `json:"date"`
	Points         float64    `json:"points"`
	EntryDate      model.Date `json:"entry_date,omitempty"`
}

var knownFields = map[string]bool{
	fieldRealName:       true,
	fieldPasswordDigest: true,
	fieldNickname:       true,
	fieldTeam:           true,
	fieldDate:           true,
	fieldPoints:         true,
	fieldEntryDate:      true,
	legacyFieldUserID:   true,
}

// UnmarshalJSON decodes a stored row, default-filling fields that older
// schema versions did not carry and stashing unrecognized fields in Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields recordFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	realName := fields.RealName
	if realName == "" {
		realName = fields.UserID
	}
	nickname := fields.Nickname
	if nickname == "" {
		nickname = realName
	}
	entryDate := fields.EntryDate
	if entryDate == "" {
		// Pre-edit-window rows had no creation day; treat the target day as
		// the creation day, which freezes them once that day has passed.
		entryDate = fields.Date
	}

	r.Entry = model.Entry{
		RealName:       realName,
		PasswordDigest: fields.PasswordDigest,
		Nickname:       nickname,
		Team:           fields.Team,
		Date:           fields.Date,
		Points:         fields.Points,
		EntryDate:      entryDate,
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Extra = nil
	for key, value := range raw {
		if knownFields[key] {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[key] = value
	}

	return nil
}

// MarshalJSON encodes the row in the current schema, carrying unrecognized
// fields through unchanged.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+7)
	for key, value := range r.Extra {
		out[key] = value
	}

	known := map[string]any{
		fieldRealName:       r.RealName,
		fieldPasswordDigest: r.PasswordDigest,
		fieldNickname:       r.Nickname,
		fieldTeam:           r.Team,
		fieldDate:           r.Date,
		fieldPoints:         r.Points,
		fieldEntryDate:      r.EntryDate,
	}
	for key, value := range known {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[key] = encoded
	}

	return json.Marshal(out)
}
