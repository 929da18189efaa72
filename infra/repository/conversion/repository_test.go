package conversion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	domain "github.com/TheCodister/swapdesk/pkg/conversion"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return &repository{db: db}, mock
}

func testRecord() domain.Record {
	return domain.Record{
		ID:           uuid.NewString(),
		FromCurrency: "ETH",
		ToCurrency:   "BTC",
		FromAmount:   2,
		ToAmount:     0.12,
		Date:         time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "conversions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), testRecord()))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "conversions" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	require.Error(t, repo.Create(context.Background(), testRecord()))
}

func TestRepository_Create_RejectsNonUUIDId(t *testing.T) {
	repo, _ := newMockRepo(t)

	record := testRecord()
	record.ID = "not-a-uuid"
	require.Error(t, repo.Create(context.Background(), record))
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepo(t)
	first := uuid.New()
	second := uuid.New()
	date := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "from_currency", "to_currency", "from_amount", "to_amount", "date", "created_at", "updated_at",
	}).
		AddRow(first, "ETH", "BTC", 2.0, 0.12, date, date, date).
		AddRow(second, "BTC", "ETH", 0.12, 2.0, date.Add(time.Minute), date.Add(time.Minute), date.Add(time.Minute))

	mock.ExpectQuery(`SELECT (.+) FROM "conversions" ORDER BY created_at ASC`).
		WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.String(), records[0].ID)
	assert.Equal(t, "ETH", records[0].FromCurrency)
	assert.InDelta(t, 0.12, records[0].ToAmount, 1e-12)
	assert.Equal(t, second.String(), records[1].ID)
}

func TestRepository_List_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "conversions" ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records, "an empty ledger lists as an empty sequence")
	assert.Empty(t, records)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	date := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "from_currency", "to_currency", "from_amount", "to_amount", "date", "created_at", "updated_at",
	}).AddRow(id, "ETH", "BTC", 2.0, 0.12, date, date, date)

	mock.ExpectQuery(`SELECT (.+) FROM "conversions" WHERE id = (.+)`).
		WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "conversions" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	record, err := repo.Update(context.Background(), id, domain.Request{
		FromCurrency: "ETH",
		ToCurrency:   "USD",
		FromAmount:   3,
		ToAmount:     5400,
	})
	require.NoError(t, err)
	assert.Equal(t, id.String(), record.ID)
	assert.Equal(t, "USD", record.ToCurrency)
	assert.InDelta(t, 3, record.FromAmount, 1e-12)
	assert.Equal(t, date, record.Date, "the persisted date never changes on update")
}

func TestRepository_Update_MissingId(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "conversions" WHERE id = (.+)`).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.Update(context.Background(), uuid.New(), domain.Request{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "conversions" WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), uuid.New()))
}

func TestRepository_Delete_MissingIdIsAnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "conversions" WHERE id = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
