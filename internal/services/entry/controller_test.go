package entry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hmori/dopabalance/internal/dependencies/mocks"
	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/ledger/memory"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/scoring"
	"github.com/hmori/dopabalance/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	store      *memory.Store
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.store = memory.New()
	// "Today" is 2024-01-15 throughout
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	scoringService := scoring.New(model.DefaultCatalog())
	s.controller = NewController(s.store, scoringService, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) submitReq(date model.Date) SubmitRequest {
	return SubmitRequest{
		RealName: "Alice Smith",
		Password: "pw",
		Nickname: "alice",
		Team:     "red",
		Date:     date,
		Selections: model.Selections{
			Assets: []string{"taking_stairs"},
		},
	}
}

func (s *ControllerSuite) allRecords() []ledger.Record {
	snap, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	return snap.Records
}

// Submit tests

func (s *ControllerSuite) TestSubmitCreatesEntryAndIdentity() {
	result, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	s.Equal(30.0, result.Score)
	s.Equal("Alice Smith", result.Applied.RealName)
	s.Equal(model.Date("2024-01-15"), result.Applied.Date)
	s.Equal(model.Date("2024-01-15"), result.Applied.EntryDate)
	s.NotEmpty(result.Applied.PasswordDigest)

	records := s.allRecords()
	s.Require().Len(records, 1)
	s.Equal(30.0, records[0].Points)
}

func (s *ControllerSuite) TestSubmitSameDayCorrectionReplaces() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	req := s.submitReq("2024-01-15")
	req.Selections = model.Selections{Assets: []string{"early_start"}}
	result, err := s.controller.Submit(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(50.0, result.Score)

	// At most one record per (identity, date)
	records := s.allRecords()
	s.Require().Len(records, 1)
	s.Equal(50.0, records[0].Points)
}

func (s *ControllerSuite) TestSubmitIdempotent() {
	req := s.submitReq("2024-01-15")

	_, err := s.controller.Submit(s.ctx, req)
	s.Require().NoError(err)
	_, err = s.controller.Submit(s.ctx, req)
	s.Require().NoError(err)

	records := s.allRecords()
	s.Require().Len(records, 1)
	s.Equal(30.0, records[0].Points)
}

func (s *ControllerSuite) TestSubmitBackfillWithinWindow() {
	result, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-13"))
	s.Require().NoError(err)

	s.Equal(model.Date("2024-01-13"), result.Applied.Date)
	// Creation day is today, not the target date
	s.Equal(model.Date("2024-01-15"), result.Applied.EntryDate)
}

func (s *ControllerSuite) TestSubmitRejectsDateOutsideWindow() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-12"))
	s.ErrorIs(err, model.ErrValidation)

	_, err = s.controller.Submit(s.ctx, s.submitReq("2024-01-16"))
	s.ErrorIs(err, model.ErrValidation)
}

func (s *ControllerSuite) TestSubmitNextDayCorrectionDenied() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	// The 15th is still within the backfill window on the 16th, but the
	// existing entry's creation day has passed
	_, err = s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.ErrorIs(err, model.ErrWindowClosed)
}

func (s *ControllerSuite) TestSubmitBackfilledEntryFreezesNextDay() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-14"))
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	// Target date 2024-01-14 is still backfillable on the 16th, but the
	// slot was created on the 15th and is frozen
	_, err = s.controller.Submit(s.ctx, s.submitReq("2024-01-14"))
	s.ErrorIs(err, model.ErrWindowClosed)
}

func (s *ControllerSuite) TestSubmitWrongPassword() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	req := s.submitReq("2024-01-14")
	req.Password = "wrong"
	_, err = s.controller.Submit(s.ctx, req)
	s.ErrorIs(err, model.ErrAuthFailed)
}

func (s *ControllerSuite) TestSubmitProfileMismatch() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	req := s.submitReq("2024-01-14")
	req.Team = "blue"
	_, err = s.controller.Submit(s.ctx, req)
	s.ErrorIs(err, model.ErrProfileMismatch)
}

func (s *ControllerSuite) TestSubmitClaimsLegacyPasswordlessIdentity() {
	// Seed a row from the pre-credential schema
	s.Require().NoError(s.store.ReplaceAll(s.ctx, 0, []ledger.Record{
		ledger.NewRecord(model.Entry{
			RealName:  "Alice Smith",
			Nickname:  "alice",
			Team:      "red",
			Date:      "2024-01-10",
			Points:    100,
			EntryDate: "2024-01-10",
		}),
	}))

	result, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)
	s.NotEmpty(result.Applied.PasswordDigest)

	// The claim reaches the pre-existing record too, so the earliest
	// entry, which defines the identity of record, carries the digest
	for _, rec := range s.allRecords() {
		s.Equal(result.Applied.PasswordDigest, rec.PasswordDigest)
	}
}

func (s *ControllerSuite) TestClaimedLegacyIdentityRejectsOtherPasswords() {
	s.Require().NoError(s.store.ReplaceAll(s.ctx, 0, []ledger.Record{
		ledger.NewRecord(model.Entry{
			RealName:  "Alice Smith",
			Nickname:  "alice",
			Team:      "red",
			Date:      "2024-01-10",
			Points:    100,
			EntryDate: "2024-01-10",
		}),
	}))

	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	req := s.submitReq("2024-01-14")
	req.Password = "guessed"
	_, err = s.controller.Submit(s.ctx, req)
	s.ErrorIs(err, model.ErrAuthFailed)

	err = s.controller.EraseAccount(s.ctx, "Alice Smith", "guessed", true)
	s.ErrorIs(err, model.ErrPasswordMismatch)
	s.Len(s.allRecords(), 2)

	// The claiming password still works
	_, err = s.controller.Submit(s.ctx, s.submitReq("2024-01-14"))
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestSubmitUnknownCatalogItem() {
	req := s.submitReq("2024-01-15")
	req.Selections = model.Selections{Assets: []string{"nonexistent"}}

	_, err := s.controller.Submit(s.ctx, req)
	s.ErrorIs(err, model.ErrValidation)
	s.Empty(s.allRecords())
}

func (s *ControllerSuite) TestSubmitUnknownTeam() {
	req := s.submitReq("2024-01-15")
	req.Team = "purple"

	_, err := s.controller.Submit(s.ctx, req)
	s.ErrorIs(err, model.ErrValidation)
}

func (s *ControllerSuite) TestSubmitRequiresPassword() {
	req := s.submitReq("2024-01-15")
	req.Password = ""

	_, err := s.controller.Submit(s.ctx, req)
	s.ErrorIs(err, model.ErrValidation)
}

func (s *ControllerSuite) TestSubmitPropagatesStoreFailure() {
	s.store.SetUnavailable(false, true)

	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.ErrorIs(err, model.ErrStoreUnavailable)
}

// SubmitAuthenticated tests

func (s *ControllerSuite) identityFor(realName, digest, nickname, team string) model.Identity {
	return model.Identity{
		RealName:       realName,
		PasswordDigest: digest,
		Nickname:       nickname,
		Team:           team,
	}
}

func (s *ControllerSuite) TestSubmitAuthenticatedCreates() {
	claim := SessionClaim{Identity: s.identityFor("Alice Smith", "digest123", "alice", "red")}

	result, err := s.controller.SubmitAuthenticated(s.ctx, claim, "2024-01-15",
		model.Selections{Assets: []string{"taking_stairs"}}, false)
	s.Require().NoError(err)
	s.Equal(30.0, result.Score)
	s.Equal("digest123", result.Applied.PasswordDigest)
}

func (s *ControllerSuite) TestSubmitAuthenticatedMatchesDigestOfRecord() {
	first, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-14"))
	s.Require().NoError(err)

	claim := SessionClaim{
		Identity:         s.identityFor("Alice Smith", first.Applied.PasswordDigest, "alice", "red"),
		DigestFromLedger: true,
	}
	_, err = s.controller.SubmitAuthenticated(s.ctx, claim, "2024-01-15",
		model.Selections{Assets: []string{"early_start"}}, false)
	s.Require().NoError(err)

	s.Len(s.allRecords(), 2)
}

func (s *ControllerSuite) TestSubmitAuthenticatedStaleDigestDenied() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-14"))
	s.Require().NoError(err)

	// A session minted before the account was erased and recreated would
	// carry a ledger-read digest the ledger no longer knows
	claim := SessionClaim{
		Identity:         s.identityFor("Alice Smith", "stale-digest", "alice", "red"),
		DigestFromLedger: true,
	}
	_, err = s.controller.SubmitAuthenticated(s.ctx, claim, "2024-01-15",
		model.Selections{Assets: []string{"early_start"}}, false)
	s.ErrorIs(err, model.ErrAuthFailed)
}

func (s *ControllerSuite) TestSubmitAuthenticatedFreshDigestSessionsInterchangeable() {
	// Two logins before the first save each mint their own salted digest.
	// Whichever session saves first puts its digest on record; the other
	// session stays valid and writes under the on-record digest.
	first := SessionClaim{Identity: s.identityFor("Alice Smith", "fresh-digest-1", "alice", "red")}
	second := SessionClaim{Identity: s.identityFor("Alice Smith", "fresh-digest-2", "alice", "red")}

	_, err := s.controller.SubmitAuthenticated(s.ctx, first, "2024-01-14",
		model.Selections{Assets: []string{"taking_stairs"}}, false)
	s.Require().NoError(err)

	result, err := s.controller.SubmitAuthenticated(s.ctx, second, "2024-01-15",
		model.Selections{Assets: []string{"early_start"}}, false)
	s.Require().NoError(err)
	s.Equal("fresh-digest-1", result.Applied.PasswordDigest)

	s.Len(s.allRecords(), 2)
}

func (s *ControllerSuite) TestSubmitAuthenticatedFreshDigestWrongProfileDenied() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-14"))
	s.Require().NoError(err)

	claim := SessionClaim{Identity: s.identityFor("Alice Smith", "fresh-digest", "mallory", "red")}
	_, err = s.controller.SubmitAuthenticated(s.ctx, claim, "2024-01-15",
		model.Selections{Assets: []string{"early_start"}}, false)
	s.ErrorIs(err, model.ErrProfileMismatch)
}

// EraseAccount tests

func (s *ControllerSuite) TestEraseAccountRemovesAllEntries() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-14"))
	s.Require().NoError(err)
	_, err = s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	other := s.submitReq("2024-01-15")
	other.RealName = "Bob Jones"
	other.Nickname = "bob"
	other.Team = "blue"
	_, err = s.controller.Submit(s.ctx, other)
	s.Require().NoError(err)

	err = s.controller.EraseAccount(s.ctx, "Alice Smith", "pw", true)
	s.Require().NoError(err)

	records := s.allRecords()
	s.Require().Len(records, 1)
	s.Equal("Bob Jones", records[0].RealName)
}

func (s *ControllerSuite) TestEraseAccountRequiresConfirmation() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	err = s.controller.EraseAccount(s.ctx, "Alice Smith", "pw", false)
	s.ErrorIs(err, model.ErrNotConfirmed)
	s.Len(s.allRecords(), 1)
}

func (s *ControllerSuite) TestEraseAccountWrongPassword() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)

	err = s.controller.EraseAccount(s.ctx, "Alice Smith", "wrong", true)
	s.ErrorIs(err, model.ErrPasswordMismatch)
	s.Len(s.allRecords(), 1)
}

func (s *ControllerSuite) TestEraseAccountUnknownIdentity() {
	err := s.controller.EraseAccount(s.ctx, "Nobody", "pw", true)
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ControllerSuite) TestEraseThenResubmitStartsFresh() {
	_, err := s.controller.Submit(s.ctx, s.submitReq("2024-01-15"))
	s.Require().NoError(err)
	s.Require().NoError(s.controller.EraseAccount(s.ctx, "Alice Smith", "pw", true))

	// The name is free again; a different password and profile may claim it
	req := s.submitReq("2024-01-15")
	req.Password = "differentpw"
	req.Nickname = "newalice"
	req.Team = "blue"
	result, err := s.controller.Submit(s.ctx, req)
	s.Require().NoError(err)
	s.Equal("newalice", result.Applied.Nickname)
}
