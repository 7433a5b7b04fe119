package services

import (
	"fmt"
	"strings"

	"github.com/dineline/dineline-backend/internal/models"
)

// Complaint flow steps
const (
	complaintStepIssue   = 2 // free-text issue description
	complaintStepName    = 3
	complaintStepPhone   = 4
	complaintStepConfirm = 5
)

// Complaint flow reply texts
const (
	msgComplaintPrompt = "❗ *Register Complaint*\n\nPlease describe your issue in detail so we can address it properly."

	msgEmptyIssue = "Please describe your issue so we can address it properly."

	msgComplaintReconfirm = "Please reply with 'confirm' to register your complaint or 'cancel' to start over."
	msgComplaintCancelled = "Your complaint has been cancelled. Type 'menu' to start over."
)

// handleComplaintFlow walks the customer through steps 2-5 of the
// complaint flow.
func (c *ConversationService) handleComplaintFlow(sess *Session, text string) (string, error) {
	switch sess.Step {

	case complaintStepIssue:
		issue, ok := nonEmpty(text)
		if !ok {
			return msgEmptyIssue, nil
		}
		draft := sess.Complaint
		draft.Issue = issue
		sess.Complaint = draft
		sess.Step = complaintStepName
		return msgAskName, nil

	case complaintStepName:
		name, ok := nonEmpty(text)
		if !ok {
			return msgEmptyName, nil
		}
		draft := sess.Complaint
		draft.Name = name
		sess.Complaint = draft
		sess.Step = complaintStepPhone
		return msgAskPhone, nil

	case complaintStepPhone:
		phone, ok := nonEmpty(text)
		if !ok {
			return msgEmptyPhone, nil
		}
		draft := sess.Complaint
		draft.Phone = phone
		sess.Complaint = draft
		sess.Step = complaintStepConfirm
		return complaintConfirmationMessage(draft), nil

	case complaintStepConfirm:
		switch {
		case isConfirm(text):
			complaint, err := c.store.CreateComplaint(&models.Complaint{
				RestaurantID: sess.RestaurantID,
				Customer: models.Customer{
					Name:  sess.Complaint.Name,
					Phone: sess.Complaint.Phone,
				},
				Issue:  sess.Complaint.Issue,
				Status: models.ComplaintStatusNew,
			})
			if err != nil {
				return "", err
			}
			sess.ended = true
			return fmt.Sprintf("✅ Your complaint has been registered! Complaint #%s\n\nWe take all complaints seriously and will address your concerns as soon as possible. A manager will contact you shortly.", complaint.Reference()), nil

		case isCancel(text):
			sess.ended = true
			return msgComplaintCancelled, nil

		default:
			return msgComplaintReconfirm, nil
		}
	}

	return msgFallback, nil
}

// complaintConfirmationMessage renders the complaint for final approval
func complaintConfirmationMessage(draft ComplaintDraft) string {
	var b strings.Builder
	b.WriteString("📝 *Complaint Confirmation*\n\n")
	fmt.Fprintf(&b, "Name: %s\n", draft.Name)
	fmt.Fprintf(&b, "Issue: %s\n", draft.Issue)
	b.WriteString("\nPlease confirm your complaint by replying with 'confirm' or 'cancel' to start over.")
	return b.String()
}
