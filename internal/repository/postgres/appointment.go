package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lawlink/lawlink-api/internal/model"
	"github.com/lawlink/lawlink-api/internal/repository"
)

type appointmentRepository struct {
	*BaseRepository
}

func NewAppointmentRepository(base *BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: base}
}

const appointmentColumns = `
	id, client_id, lawyer_profile_id, service_id, slot_id,
	appointment_date, appointment_time, status,
	lawyer_notes, client_notes, meeting_link, meeting_type,
	confirmed_at, created_at, updated_at
`

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	defer r.track("select", "appointments")()

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", translateErr(err))
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	defer r.track("select", "appointments")()

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	var args []interface{}

	if filters.ClientID != uuid.Nil {
		args = append(args, filters.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filters.LawyerProfileID != uuid.Nil {
		args = append(args, filters.LawyerProfileID)
		query += fmt.Sprintf(" AND lawyer_profile_id = $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY appointment_date ASC, appointment_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// hasConflict reports whether another live (pending or confirmed) appointment
// occupies the same lawyer/date/time. Runs against the pool or inside a
// transaction depending on q.
func hasConflict(ctx context.Context, q queryer, key repository.ScheduleKey, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE lawyer_profile_id = $1
			AND appointment_date = $2
			AND appointment_time = $3
			AND status IN ('pending', 'confirmed')
			AND id != $4
		)
	`
	var conflict bool
	if err := q.GetContext(ctx, &conflict, query, key.LawyerProfileID, key.Date, key.Time, excludeID); err != nil {
		return false, fmt.Errorf("failed to check schedule conflict: %w", err)
	}
	return conflict, nil
}

// Book inserts the pending appointment, claims the optional availability slot
// and writes the booking notifications in one transaction.
func (r *appointmentRepository) Book(ctx context.Context, apt *model.Appointment, notifs []*model.Notification) error {
	defer r.track("insert", "appointments")()

	apt.ID = uuid.New()
	apt.Status = model.AppointmentStatusPending
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		conflict, err := hasConflict(ctx, tx, repository.ScheduleKey{
			LawyerProfileID: apt.LawyerProfileID,
			Date:            apt.AppointmentDate,
			Time:            apt.AppointmentTime,
		}, uuid.Nil)
		if err != nil {
			return err
		}
		if conflict {
			return repository.ErrScheduleConflict
		}

		if apt.SlotID != nil {
			// Claim the slot only if it is still free; a zero-row update
			// means someone else booked it first.
			result, err := tx.ExecContext(ctx, `
				UPDATE availability_slots
				SET booked = TRUE, updated_at = $1
				WHERE id = $2 AND lawyer_profile_id = $3 AND NOT booked
			`, time.Now(), *apt.SlotID, apt.LawyerProfileID)
			if err != nil {
				return fmt.Errorf("failed to claim availability slot: %w", err)
			}
			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			if rows == 0 {
				return repository.ErrSlotUnavailable
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO appointments (
				id, client_id, lawyer_profile_id, service_id, slot_id,
				appointment_date, appointment_time, status,
				lawyer_notes, client_notes, meeting_link, meeting_type,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
			apt.ID, apt.ClientID, apt.LawyerProfileID, apt.ServiceID, apt.SlotID,
			apt.AppointmentDate, apt.AppointmentTime, apt.Status,
			apt.LawyerNotes, apt.ClientNotes, apt.MeetingLink, apt.MeetingType,
			apt.CreatedAt, apt.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", translateErr(err))
		}

		return insertNotifications(ctx, tx, notifs)
	})
}

// Update applies the appointment row update plus its side effects (slot
// release, notification fan-out, conflict re-check) in one transaction, so
// no partial state is ever visible.
func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment, upd *repository.AppointmentUpdate) error {
	defer r.track("update", "appointments")()

	apt.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if upd.ConflictKey != nil {
			conflict, err := hasConflict(ctx, tx, *upd.ConflictKey, apt.ID)
			if err != nil {
				return err
			}
			if conflict {
				return repository.ErrScheduleConflict
			}
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE appointments
			SET appointment_date = $1, appointment_time = $2, status = $3,
				lawyer_notes = $4, client_notes = $5,
				meeting_link = $6, meeting_type = $7,
				confirmed_at = $8, updated_at = $9
			WHERE id = $10
		`,
			apt.AppointmentDate, apt.AppointmentTime, apt.Status,
			apt.LawyerNotes, apt.ClientNotes,
			apt.MeetingLink, apt.MeetingType,
			apt.ConfirmedAt, apt.UpdatedAt,
			apt.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrNotFound
		}

		if upd.FreeSlotID != nil {
			if _, err := tx.ExecContext(ctx, `
				UPDATE availability_slots
				SET booked = FALSE, updated_at = $1
				WHERE id = $2
			`, time.Now(), *upd.FreeSlotID); err != nil {
				return fmt.Errorf("failed to release availability slot: %w", err)
			}
		}

		return insertNotifications(ctx, tx, upd.Notifications)
	})
}

func insertNotifications(ctx context.Context, tx *sqlx.Tx, notifs []*model.Notification) error {
	for _, n := range notifs {
		n.ID = uuid.New()
		n.CreatedAt = time.Now()
		n.UpdatedAt = n.CreatedAt
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO notifications (id, user_id, title, message, type, read, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
		`, n.ID, n.UserID, n.Title, n.Message, n.Type, n.CreatedAt, n.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
	}
	return nil
}
