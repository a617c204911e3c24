package postgres

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
)

type StoreSuite struct {
	suite.Suite
	db    sqlmock.Sqlmock
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	s.Require().NoError(err)

	s.db = mock
	s.store = New(db)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	s.NoError(s.db.ExpectationsWereMet())
	_ = s.store.Close()
}

func (s *StoreSuite) recordsJSON(records ...ledger.Record) []byte {
	data, err := json.Marshal(records)
	s.Require().NoError(err)
	return data
}

func (s *StoreSuite) TestReadAllEmptyWhenRowMissing() {
	s.db.ExpectQuery(`SELECT version, records FROM ledger_state`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "records"}))

	snap, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(0), snap.Version)
	s.Empty(snap.Records)
}

func (s *StoreSuite) TestReadAllReturnsSnapshot() {
	data := s.recordsJSON(ledger.NewRecord(model.Entry{
		RealName: "alice",
		Nickname: "al",
		Team:     "red",
		Date:     "2024-01-15",
		Points:   100,
	}))

	s.db.ExpectQuery(`SELECT version, records FROM ledger_state`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "records"}).AddRow(3, data))

	snap, err := s.store.ReadAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(3), snap.Version)
	s.Require().Len(snap.Records, 1)
	s.Equal("alice", snap.Records[0].RealName)
}

func (s *StoreSuite) TestReadAllMapsBackendFailure() {
	s.db.ExpectQuery(`SELECT version, records FROM ledger_state`).
		WillReturnError(context.DeadlineExceeded)

	_, err := s.store.ReadAll(s.ctx)
	s.ErrorIs(err, model.ErrStoreUnavailable)
}

func (s *StoreSuite) TestReadAllCorruptRecords() {
	s.db.ExpectQuery(`SELECT version, records FROM ledger_state`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "records"}).AddRow(1, []byte("{not json")))

	_, err := s.store.ReadAll(s.ctx)
	s.ErrorIs(err, model.ErrStoreUnavailable)
}

func (s *StoreSuite) TestReplaceAllFirstWriteInserts() {
	s.db.ExpectExec(`INSERT INTO ledger_state`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.store.ReplaceAll(s.ctx, 0, nil)
	s.NoError(err)
}

func (s *StoreSuite) TestReplaceAllUpdatesWithVersionCheck() {
	s.db.ExpectExec(`UPDATE ledger_state SET version = version \+ 1`).
		WithArgs(sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.store.ReplaceAll(s.ctx, 3, nil)
	s.NoError(err)
}

func (s *StoreSuite) TestReplaceAllStaleVersionConflicts() {
	s.db.ExpectExec(`UPDATE ledger_state SET version = version \+ 1`).
		WithArgs(sqlmock.AnyArg(), 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.store.ReplaceAll(s.ctx, 2, nil)
	s.ErrorIs(err, model.ErrVersionConflict)
}

func (s *StoreSuite) TestReplaceAllConcurrentFirstWriteConflicts() {
	s.db.ExpectExec(`INSERT INTO ledger_state`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.store.ReplaceAll(s.ctx, 0, nil)
	s.ErrorIs(err, model.ErrVersionConflict)
}

func (s *StoreSuite) TestReplaceAllMapsBackendFailure() {
	s.db.ExpectExec(`UPDATE ledger_state`).
		WillReturnError(context.DeadlineExceeded)

	err := s.store.ReplaceAll(s.ctx, 1, nil)
	s.ErrorIs(err, model.ErrStoreUnavailable)
}
