package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func pendingAppointment() *model.Appointment {
	return &model.Appointment{
		ClientID:        uuid.New(),
		LawyerProfileID: uuid.New(),
		ServiceID:       uuid.New(),
		AppointmentDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:00",
	}
}

func TestBookCommitsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(NewBaseRepository(db, nil))

	apt := pendingAppointment()
	notifs := []*model.Notification{
		{UserID: apt.ClientID, Title: "Booking requested", Type: model.NotificationTypeAppointment},
		{UserID: uuid.New(), Title: "New booking request", Type: model.NotificationTypeAppointment},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Book(context.Background(), apt, notifs)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRollsBackOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(NewBaseRepository(db, nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.Book(context.Background(), pendingAppointment(), nil)
	assert.ErrorIs(t, err, repository.ErrScheduleConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSlotAlreadyClaimed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(NewBaseRepository(db, nil))

	apt := pendingAppointment()
	slotID := uuid.New()
	apt.SlotID = &slotID

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	// Zero rows updated: another client claimed the slot first.
	mock.ExpectExec("UPDATE availability_slots").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Book(context.Background(), apt, nil)
	assert.ErrorIs(t, err, repository.ErrSlotUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRescheduleChecksConflictInTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(NewBaseRepository(db, nil))

	apt := pendingAppointment()
	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusPending

	upd := &repository.AppointmentUpdate{
		ConflictKey: &repository.ScheduleKey{
			LawyerProfileID: apt.LawyerProfileID,
			Date:            apt.AppointmentDate,
			Time:            apt.AppointmentTime,
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), apt, upd)
	assert.ErrorIs(t, err, repository.ErrScheduleConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReleasesSlotAndNotifies(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(NewBaseRepository(db, nil))

	apt := pendingAppointment()
	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusCancelled
	slotID := uuid.New()

	upd := &repository.AppointmentUpdate{
		FreeSlotID: &slotID,
		Notifications: []*model.Notification{
			{UserID: apt.ClientID, Title: "Appointment cancelled", Type: model.NotificationTypeAppointment},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE availability_slots").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), apt, upd)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVanishedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(NewBaseRepository(db, nil))

	apt := pendingAppointment()
	apt.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), apt, &repository.AppointmentUpdate{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(NewBaseRepository(db, nil))

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
