package services

import (
	"fmt"
	"strings"

	"github.com/dineline/dineline-backend/internal/models"
)

// Feedback flow steps
const (
	feedbackStepRating  = 2 // RATING COMMENT on one line
	feedbackStepName    = 3
	feedbackStepPhone   = 4
	feedbackStepConfirm = 5
)

// Feedback flow reply texts
const (
	msgFeedbackPrompt = "⭐ *Feedback*\n\nPlease rate your experience from 1-5 stars and add any comments.\n\nExample: 5 The food was amazing and service was excellent!"

	msgInvalidFeedback = "Invalid format. Please provide your rating (1-5) followed by your comments.\n\nExample: 5 The food was amazing and service was excellent!"

	msgAskName  = "Please provide your name."
	msgAskPhone = "Please provide your phone number."

	msgFeedbackReconfirm = "Please reply with 'confirm' to submit your feedback or 'cancel' to start over."
	msgFeedbackCancelled = "Your feedback has been cancelled. Type 'menu' to start over."
)

// handleFeedbackFlow walks the customer through steps 2-5 of the
// feedback flow.
func (c *ConversationService) handleFeedbackFlow(sess *Session, text string) (string, error) {
	switch sess.Step {

	case feedbackStepRating:
		rating, comment, ok := parseFeedback(text)
		if !ok {
			return msgInvalidFeedback, nil
		}
		draft := sess.Feedback
		draft.Rating = rating
		draft.Comment = comment
		sess.Feedback = draft
		sess.Step = feedbackStepName
		return msgAskName, nil

	case feedbackStepName:
		name, ok := nonEmpty(text)
		if !ok {
			return msgEmptyName, nil
		}
		draft := sess.Feedback
		draft.Name = name
		sess.Feedback = draft
		sess.Step = feedbackStepPhone
		return msgAskPhone, nil

	case feedbackStepPhone:
		phone, ok := nonEmpty(text)
		if !ok {
			return msgEmptyPhone, nil
		}
		draft := sess.Feedback
		draft.Phone = phone
		sess.Feedback = draft
		sess.Step = feedbackStepConfirm
		return feedbackConfirmationMessage(draft), nil

	case feedbackStepConfirm:
		switch {
		case isConfirm(text):
			_, err := c.store.CreateFeedback(&models.Feedback{
				RestaurantID: sess.RestaurantID,
				Customer: models.Customer{
					Name:  sess.Feedback.Name,
					Phone: sess.Feedback.Phone,
				},
				Rating:  sess.Feedback.Rating,
				Comment: sess.Feedback.Comment,
			})
			if err != nil {
				return "", err
			}
			sess.ended = true
			return "✅ Your feedback has been submitted! Thank you for sharing your experience with us.", nil

		case isCancel(text):
			sess.ended = true
			return msgFeedbackCancelled, nil

		default:
			return msgFeedbackReconfirm, nil
		}
	}

	return msgFallback, nil
}

// feedbackConfirmationMessage renders the feedback for final approval
func feedbackConfirmationMessage(draft FeedbackDraft) string {
	var b strings.Builder
	b.WriteString("📝 *Feedback Confirmation*\n\n")
	fmt.Fprintf(&b, "Name: %s\n", draft.Name)
	fmt.Fprintf(&b, "Rating: %s\n", strings.Repeat("⭐", draft.Rating))
	fmt.Fprintf(&b, "Comments: %s\n", draft.Comment)
	b.WriteString("\nPlease confirm your feedback by replying with 'confirm' or 'cancel' to start over.")
	return b.String()
}
