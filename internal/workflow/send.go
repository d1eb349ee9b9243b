package workflow

import (
	"regexp"
	"strings"
	"time"

	"github.com/toiture-lv/quote-api/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ValidEmail reports whether s looks like an email address
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// EmailDefaults fill a blank subject or body on immediate sends.
// {category} in the subject is replaced by the submission category.
type EmailDefaults struct {
	Subject string
	Body    string
}

// DefaultEmail is the French client email
var DefaultEmail = EmailDefaults{
	Subject: "Soumission - Toiture LV - {category}",
	Body:    "<p>Veuillez trouver ci-joint votre soumission.</p><p>Toiture LV</p>",
}

func (d EmailDefaults) apply(email Email, category string) Email {
	if email.Subject == "" {
		email.Subject = strings.ReplaceAll(d.Subject, "{category}", category)
	}
	if strings.TrimSpace(email.Body) == "" {
		email.Body = d.Body
	}
	return email
}

// Email is the outbound message for an approved submission
type Email struct {
	Recipient string
	Subject   string
	Body      string
}

func (e Email) normalized() Email {
	return Email{
		Recipient: strings.TrimSpace(e.Recipient),
		Subject:   strings.TrimSpace(e.Subject),
		Body:      e.Body,
	}
}

func requireApproved(sub *domain.Submission) error {
	if sub.Status != domain.StatusApproved {
		return domain.Guardf("only approved submissions can be sent, status is %s", sub.Status)
	}
	return nil
}

func requireRecipient(email Email) error {
	if email.Recipient == "" {
		return domain.Validationf("recipient email is required")
	}
	if !ValidEmail(email.Recipient) {
		return domain.Validationf("recipient email %q is not valid", email.Recipient)
	}
	return nil
}

// SaveSendDraft stores the email fields without sending
func (m *Machine) SaveSendDraft(sub *domain.Submission, actor domain.Actor, email Email) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if err := requireApproved(sub); err != nil {
		return nil, err
	}
	email = email.normalized()
	if email.Recipient != "" && !ValidEmail(email.Recipient) {
		return nil, domain.Validationf("recipient email %q is not valid", email.Recipient)
	}

	next := clone(sub)
	applyEmail(next, email)
	next.SendStatus = domain.SendStatusDraft
	next.ScheduledSendAt = nil
	next.UpdatedAt = m.now().UTC()
	return next, nil
}

// Schedule queues the email for the dispatch job
func (m *Machine) Schedule(sub *domain.Submission, actor domain.Actor, email Email, at time.Time) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if err := requireApproved(sub); err != nil {
		return nil, err
	}
	email = email.normalized()
	if err := requireRecipient(email); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	if at.IsZero() {
		return nil, domain.Validationf("scheduled send time is required")
	}
	if !at.After(now) {
		return nil, domain.Validationf("scheduled send time must be in the future")
	}

	next := clone(sub)
	applyEmail(next, email)
	scheduled := at.UTC()
	next.SendStatus = domain.SendStatusScheduled
	next.ScheduledSendAt = &scheduled
	next.SendError = ""
	next.UpdatedAt = now
	return next, nil
}

// PrepareSend validates an immediate send and stores the email fields,
// filling a blank subject or body from the defaults. The caller mails the returned submission and then calls MarkSent or
// MarkSendFailed.
func (m *Machine) PrepareSend(sub *domain.Submission, actor domain.Actor, email Email) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if err := requireApproved(sub); err != nil {
		return nil, err
	}
	email = email.normalized()
	if err := requireRecipient(email); err != nil {
		return nil, err
	}
	email = m.mailDefaults.apply(email, sub.Category)

	next := clone(sub)
	applyEmail(next, email)
	return next, nil
}

// MarkSent records a delivered email with a sent audit entry
func (m *Machine) MarkSent(sub *domain.Submission, actor domain.Actor) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if err := requireApproved(sub); err != nil {
		return nil, err
	}
	if err := requireRecipient(Email{Recipient: sub.RecipientEmail}); err != nil {
		return nil, err
	}

	next := clone(sub)
	at := m.stamp(next)
	next.SendStatus = domain.SendStatusSent
	next.SentAt = &at
	next.ScheduledSendAt = nil
	next.SendError = ""
	m.audit(next, actor, domain.AuditSent, map[string]domain.FieldChange{
		"recipient": {Old: nil, New: sub.RecipientEmail},
	}, "")
	return next, nil
}

// MarkSendFailed records a failed delivery. No audit entry is written.
func (m *Machine) MarkSendFailed(sub *domain.Submission, reason string) *domain.Submission {
	next := clone(sub)
	next.SendStatus = domain.SendStatusFailed
	next.SendError = reason
	next.UpdatedAt = m.now().UTC()
	return next
}

func applyEmail(sub *domain.Submission, email Email) {
	sub.RecipientEmail = email.Recipient
	sub.EmailSubject = email.Subject
	sub.EmailBody = email.Body
}
