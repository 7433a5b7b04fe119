package services

import (
	"fmt"
	"strings"

	"github.com/dineline/dineline-backend/internal/models"
)

// Booking flow steps
const (
	bookingStepDetails = 2 // DATE TIME GUESTS on one line
	bookingStepName    = 3
	bookingStepPhone   = 4
	bookingStepNotes   = 5
	bookingStepConfirm = 6
)

// Booking flow reply texts
const (
	msgBookingPrompt = "📅 *Table Booking*\n\nPlease provide the following details:\n- Date (YYYY-MM-DD)\n- Time (HH:MM)\n- Number of guests\n\nExample: 2025-04-20 19:30 4"

	msgInvalidBooking = "Invalid format. Please provide date, time and number of guests in the format: YYYY-MM-DD HH:MM X\n\nExample: 2025-04-20 19:30 4"

	msgAskBookingName  = "Please provide your name for the reservation."
	msgAskBookingPhone = "Please provide your phone number for reservation updates."
	msgAskBookingNotes = "Do you have any special requests or notes for your reservation? (Type 'none' if none)"

	msgBookingReconfirm = "Please reply with 'confirm' to make your reservation or 'cancel' to start over."
	msgBookingCancelled = "Your reservation has been cancelled. Type 'menu' to start over."
)

// handleBookingFlow walks the customer through steps 2-6 of the table
// booking flow.
func (c *ConversationService) handleBookingFlow(sess *Session, text string) (string, error) {
	switch sess.Step {

	case bookingStepDetails:
		date, timeOfDay, guests, ok := parseBookingDetails(text)
		if !ok {
			return msgInvalidBooking, nil
		}
		draft := sess.Booking
		draft.Date = date
		draft.Time = timeOfDay
		draft.Guests = guests
		sess.Booking = draft
		sess.Step = bookingStepName
		return msgAskBookingName, nil

	case bookingStepName:
		name, ok := nonEmpty(text)
		if !ok {
			return msgEmptyName, nil
		}
		draft := sess.Booking
		draft.Name = name
		sess.Booking = draft
		sess.Step = bookingStepPhone
		return msgAskBookingPhone, nil

	case bookingStepPhone:
		phone, ok := nonEmpty(text)
		if !ok {
			return msgEmptyPhone, nil
		}
		draft := sess.Booking
		draft.Phone = phone
		sess.Booking = draft
		sess.Step = bookingStepNotes
		return msgAskBookingNotes, nil

	case bookingStepNotes:
		notes, ok := nonEmpty(text)
		if !ok {
			return msgAskBookingNotes, nil
		}
		if normalize(notes) == "none" {
			notes = ""
		}
		draft := sess.Booking
		draft.Notes = notes
		sess.Booking = draft
		sess.Step = bookingStepConfirm
		return bookingConfirmationMessage(draft), nil

	case bookingStepConfirm:
		switch {
		case isConfirm(text):
			booking, err := c.store.CreateBooking(&models.Booking{
				RestaurantID: sess.RestaurantID,
				Customer: models.Customer{
					Name:  sess.Booking.Name,
					Phone: sess.Booking.Phone,
				},
				Date:   sess.Booking.Date,
				Time:   sess.Booking.Time,
				Guests: sess.Booking.Guests,
				Notes:  sess.Booking.Notes,
				Status: models.BookingStatusPending,
			})
			if err != nil {
				return "", err
			}
			sess.ended = true
			return fmt.Sprintf("✅ Your reservation has been confirmed! Booking #%s\n\nWe look forward to seeing you on %s at %s. Thank you for choosing us!",
				booking.Reference(), booking.Date, booking.Time), nil

		case isCancel(text):
			sess.ended = true
			return msgBookingCancelled, nil

		default:
			return msgBookingReconfirm, nil
		}
	}

	return msgFallback, nil
}

// bookingConfirmationMessage renders the reservation for final approval
func bookingConfirmationMessage(draft BookingDraft) string {
	var b strings.Builder
	b.WriteString("📝 *Reservation Confirmation*\n\n")
	fmt.Fprintf(&b, "Name: %s\n", draft.Name)
	fmt.Fprintf(&b, "Phone: %s\n", draft.Phone)
	fmt.Fprintf(&b, "Date: %s\n", draft.Date)
	fmt.Fprintf(&b, "Time: %s\n", draft.Time)
	fmt.Fprintf(&b, "Guests: %d\n", draft.Guests)
	if draft.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", draft.Notes)
	}
	b.WriteString("\nPlease confirm your reservation by replying with 'confirm' or 'cancel' to start over.")
	return b.String()
}
