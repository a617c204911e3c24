package entry

import (
	"context"
	"log/slog"

	"github.com/hmori/dopabalance/internal/dependencies/clock"
	"github.com/hmori/dopabalance/internal/dependencies/random"
	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/credential"
	"github.com/hmori/dopabalance/internal/services/scoring"
)

// Controller drives the write path of the ledger: authorization through
// the edit-window guard, score computation, and whole-snapshot upserts
// behind the optimistic-concurrency loop. Identity facts are resolved
// inside each attempt so concurrent mutations are classified against the
// snapshot they actually replace.
type Controller struct {
	store   ledger.Store
	scoring *scoring.Service
	catalog *model.Catalog
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new entry Controller
func NewController(store ledger.Store, scoringService *scoring.Service, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		store:   store,
		scoring: scoringService,
		catalog: scoringService.Catalog(),
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// SubmitRequest carries one submission attempt
type SubmitRequest struct {
	RealName   string
	Password   string
	Nickname   string
	Team       string
	Date       model.Date
	Selections model.Selections
	Confess    bool
}

// SubmitResult is the outcome of an applied submission
type SubmitResult struct {
	Score   float64
	Applied model.Entry
}

// Submit scores the selections and creates or corrects the entry for
// (real_name, date), authenticating with the raw password.
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if err := c.validate(req.RealName, req.Nickname, req.Team); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, model.NewValidationError("password is required")
	}

	// Lazily derived fresh digest, reused across retry attempts
	freshDigest := ""
	hashOnce := func() (string, error) {
		if freshDigest == "" {
			digest, err := credential.Hash(req.Password)
			if err != nil {
				return "", err
			}
			freshDigest = digest
		}
		return freshDigest, nil
	}

	claim := func(records []ledger.Record) ([]ledger.Record, model.Identity, error) {
		onRecord, ok := ledger.IdentityOf(records, req.RealName)
		if !ok {
			// Create-identity-if-absent: the supplied facts become
			// of-record with this first entry
			digest, err := hashOnce()
			if err != nil {
				return nil, model.Identity{}, err
			}
			return records, model.Identity{
				RealName:       req.RealName,
				PasswordDigest: digest,
				Nickname:       req.Nickname,
				Team:           req.Team,
			}, nil
		}

		if !credential.Verify(req.Password, onRecord.PasswordDigest) {
			return nil, model.Identity{}, model.ErrAuthFailed
		}
		if req.Nickname != onRecord.Nickname || req.Team != onRecord.Team {
			return nil, model.Identity{}, model.ErrProfileMismatch
		}
		if onRecord.PasswordDigest == "" {
			// Legacy passwordless identity, claimed by this save. The
			// digest is stamped onto every surviving record so the
			// earliest one, which defines the identity of record, stops
			// matching arbitrary passwords.
			digest, err := hashOnce()
			if err != nil {
				return nil, model.Identity{}, err
			}
			onRecord.PasswordDigest = digest
			records = ledger.SetDigest(records, req.RealName, digest)
		}
		return records, onRecord, nil
	}

	return c.submit(ctx, claim, req.Date, req.Selections, req.Confess)
}

// SessionClaim is the identity a session-authenticated write runs under.
// DigestFromLedger says whether the session's digest was read off the
// identity of record at login, or freshly minted because no digest was on
// record yet. Fresh digests are salted per login, so two sessions for the
// same password never carry the same digest and must not be compared to
// the ledger byte for byte.
type SessionClaim struct {
	Identity         model.Identity
	DigestFromLedger bool
}

// SubmitAuthenticated is the session-token write path: the identity was
// already verified at login, so the raw password is no longer available or
// needed. A session whose digest came off the ledger is still checked
// against the current identity of record in case the account was erased
// and recreated underneath it; a session minted before any digest existed
// defers to whatever digest the first save put on record.
func (c *Controller) SubmitAuthenticated(ctx context.Context, sc SessionClaim, date model.Date, sel model.Selections, confess bool) (*SubmitResult, error) {
	if err := c.validate(sc.Identity.RealName, sc.Identity.Nickname, sc.Identity.Team); err != nil {
		return nil, err
	}

	claim := func(records []ledger.Record) ([]ledger.Record, model.Identity, error) {
		onRecord, ok := ledger.IdentityOf(records, sc.Identity.RealName)
		if !ok {
			return records, sc.Identity, nil
		}
		if sc.DigestFromLedger && onRecord.PasswordDigest != sc.Identity.PasswordDigest {
			return nil, model.Identity{}, model.ErrAuthFailed
		}
		if sc.Identity.Nickname != onRecord.Nickname || sc.Identity.Team != onRecord.Team {
			return nil, model.Identity{}, model.ErrProfileMismatch
		}
		if onRecord.PasswordDigest == "" {
			onRecord.PasswordDigest = sc.Identity.PasswordDigest
			records = ledger.SetDigest(records, onRecord.RealName, onRecord.PasswordDigest)
		}
		return records, onRecord, nil
	}

	return c.submit(ctx, claim, date, sel, confess)
}

// claimFunc resolves the identity facts a write will be applied under,
// against the snapshot being replaced. It may return a rewritten record
// set when resolving the claim itself changes identity state, as a legacy
// credential claim does.
type claimFunc func(records []ledger.Record) ([]ledger.Record, model.Identity, error)

func (c *Controller) submit(ctx context.Context, claim claimFunc, date model.Date, sel model.Selections, confess bool) (*SubmitResult, error) {
	score, err := c.scoring.Score(sel, confess)
	if err != nil {
		return nil, err
	}

	today := model.DateOf(c.clock.Now())
	if !validTargetDate(date, today) {
		return nil, model.NewValidationError(
			"date %s outside the allowed window [%s, %s]",
			date, today.AddDays(-BackfillDays), today)
	}

	var applied model.Entry
	err = ledger.Mutate(ctx, c.store, c.random, func(records []ledger.Record) ([]ledger.Record, error) {
		records, identity, err := claim(records)
		if err != nil {
			return nil, err
		}

		var existing *ledger.Record
		if rec, ok := ledger.Find(records, identity.RealName, date); ok {
			existing = &rec
		}

		decision := Authorize(existing, identity.PasswordDigest, today)
		switch decision {
		case model.EditDenyPassword:
			return nil, model.ErrAuthFailed
		case model.EditDenyWindowClosed:
			return nil, model.ErrWindowClosed
		}

		applied = model.Entry{
			RealName:       identity.RealName,
			PasswordDigest: identity.PasswordDigest,
			Nickname:       identity.Nickname,
			Team:           identity.Team,
			Date:           date,
			Points:         score,
			EntryDate:      today,
		}
		return ledger.Upsert(records, applied), nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("entry saved",
		slog.String("nickname", applied.Nickname),
		slog.String("team", applied.Team),
		slog.String("date", applied.Date.String()),
		slog.Float64("points", applied.Points),
	)

	return &SubmitResult{Score: score, Applied: applied}, nil
}

// EraseAccount removes every entry for the real name after verifying the
// password. The caller is responsible for invalidating any sessions for
// the identity afterward.
func (c *Controller) EraseAccount(ctx context.Context, realName, password string, confirmed bool) error {
	if realName == "" {
		return model.NewValidationError("real name is required")
	}
	if !confirmed {
		return model.ErrNotConfirmed
	}

	removed := 0
	err := ledger.Mutate(ctx, c.store, c.random, func(records []ledger.Record) ([]ledger.Record, error) {
		onRecord, ok := ledger.IdentityOf(records, realName)
		if !ok {
			return nil, model.ErrAccountNotFound
		}
		if !credential.Verify(password, onRecord.PasswordDigest) {
			return nil, model.ErrPasswordMismatch
		}

		next, n := ledger.Erase(records, realName)
		removed = n
		return next, nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("account erased",
		slog.String("real_name", realName),
		slog.Int("entries_removed", removed),
	)
	return nil
}

func (c *Controller) validate(realName, nickname, team string) error {
	switch {
	case realName == "":
		return model.NewValidationError("real name is required")
	case nickname == "":
		return model.NewValidationError("nickname is required")
	case team == "":
		return model.NewValidationError("team is required")
	case !c.catalog.ValidTeam(team):
		return model.NewValidationError("unknown team %q", team)
	}
	return nil
}
