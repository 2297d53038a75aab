package appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/model"
)

func schedule(apt *model.Appointment) string {
	return fmt.Sprintf("%s at %s", apt.AppointmentDate.Format("January 2, 2006"), apt.AppointmentTime)
}

func bookingNotifications(apt *model.Appointment, clientUserID, lawyerUserID uuid.UUID) []*model.Notification {
	when := schedule(apt)
	return []*model.Notification{
		{
			UserID:  clientUserID,
			Title:   "Booking requested",
			Message: fmt.Sprintf("Your consultation request for %s has been sent and is awaiting confirmation.", when),
			Type:    model.NotificationTypeAppointment,
		},
		{
			UserID:  lawyerUserID,
			Title:   "New booking request",
			Message: fmt.Sprintf("A client has requested a consultation for %s.", when),
			Type:    model.NotificationTypeAppointment,
		},
	}
}

// changeNotifications builds the one-per-party notification pair for a status
// change, or the generic reschedule pair when only the schedule moved.
func changeNotifications(apt *model.Appointment, statusChanged bool, clientUserID, lawyerUserID uuid.UUID) []*model.Notification {
	when := schedule(apt)

	var clientMsg, lawyerMsg, title string
	if statusChanged {
		switch apt.Status {
		case model.AppointmentStatusConfirmed:
			title = "Appointment confirmed"
			clientMsg = fmt.Sprintf("Your consultation on %s has been confirmed by the lawyer.", when)
			lawyerMsg = fmt.Sprintf("You confirmed the consultation on %s.", when)
		case model.AppointmentStatusCompleted:
			title = "Appointment completed"
			clientMsg = fmt.Sprintf("Your consultation on %s has been marked completed. You can now leave a review.", when)
			lawyerMsg = fmt.Sprintf("You marked the consultation on %s as completed.", when)
		case model.AppointmentStatusCancelled:
			title = "Appointment cancelled"
			clientMsg = fmt.Sprintf("The consultation on %s has been cancelled.", when)
			lawyerMsg = fmt.Sprintf("The consultation on %s has been cancelled.", when)
		}
	} else {
		title = "Appointment rescheduled"
		clientMsg = fmt.Sprintf("Your consultation has been moved to %s.", when)
		lawyerMsg = fmt.Sprintf("A consultation has been moved to %s.", when)
	}

	return []*model.Notification{
		{
			UserID:  clientUserID,
			Title:   title,
			Message: clientMsg,
			Type:    model.NotificationTypeAppointment,
		},
		{
			UserID:  lawyerUserID,
			Title:   title,
			Message: lawyerMsg,
			Type:    model.NotificationTypeAppointment,
		},
	}
}
