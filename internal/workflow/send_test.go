package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/pricing"
	"github.com/toiture-lv/quote-api/internal/workflow"
)

func approvedSubmission(t *testing.T, m *workflow.Machine) *domain.Submission {
	t.Helper()
	sub, err := m.Finalize(createDraft(t, m, twoItems()), estimator)
	require.NoError(t, err)
	sub, err = m.Approve(sub, admin)
	require.NoError(t, err)
	return sub
}

func TestValidEmail(t *testing.T) {
	assert.True(t, workflow.ValidEmail("client@example.ca"))
	assert.False(t, workflow.ValidEmail("client@example"))
	assert.False(t, workflow.ValidEmail("client.example.ca"))
	assert.False(t, workflow.ValidEmail("a@b@c.ca"))
}

func TestSend_RequiresApproved(t *testing.T) {
	m, _ := newMachine(t)
	draft := createDraft(t, m, twoItems())
	email := workflow.Email{Recipient: "client@example.ca"}

	_, err := m.PrepareSend(draft, estimator, email)
	assert.ErrorIs(t, err, domain.ErrGuardViolation)

	_, err = m.SaveSendDraft(draft, estimator, email)
	assert.ErrorIs(t, err, domain.ErrGuardViolation)

	_, err = m.Schedule(draft, estimator, email, time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrGuardViolation)
}

func TestSendNow_MarksSent(t *testing.T) {
	m, _ := newMachine(t)
	sub := approvedSubmission(t, m)

	prepared, err := m.PrepareSend(sub, estimator, workflow.Email{Recipient: " client@example.ca ", Subject: "Votre soumission"})
	require.NoError(t, err)
	assert.Equal(t, "client@example.ca", prepared.RecipientEmail)
	assert.Len(t, prepared.AuditLog, len(sub.AuditLog))

	sent, err := m.MarkSent(prepared, estimator)
	require.NoError(t, err)
	assert.Equal(t, domain.SendStatusSent, sent.SendStatus)
	require.NotNil(t, sent.SentAt)
	last := sent.AuditLog[len(sent.AuditLog)-1]
	assert.Equal(t, domain.AuditSent, last.Action)
	assert.Equal(t, "client@example.ca", last.Changes["recipient"].New)
	assert.Equal(t, domain.StatusApproved, sent.Status)
}

func TestSendNow_DefaultsBlankFields(t *testing.T) {
	m, _ := newMachine(t)
	sub := approvedSubmission(t, m)

	prepared, err := m.PrepareSend(sub, estimator, workflow.Email{Recipient: "client@example.ca", Subject: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Soumission - Toiture LV - Bardeaux", prepared.EmailSubject)
	assert.Equal(t, "<p>Veuillez trouver ci-joint votre soumission.</p><p>Toiture LV</p>", prepared.EmailBody)

	kept, err := m.PrepareSend(sub, estimator, workflow.Email{Recipient: "client@example.ca", Subject: "Votre soumission", Body: "<p>Bonjour</p>"})
	require.NoError(t, err)
	assert.Equal(t, "Votre soumission", kept.EmailSubject)
	assert.Equal(t, "<p>Bonjour</p>", kept.EmailBody)

	custom := workflow.NewMachine(pricing.Markups{Version: "test"}, workflow.WithEmailDefaults(workflow.EmailDefaults{
		Subject: "Quote {category}",
	}))
	prepared, err = custom.PrepareSend(sub, estimator, workflow.Email{Recipient: "client@example.ca"})
	require.NoError(t, err)
	assert.Equal(t, "Quote Bardeaux", prepared.EmailSubject)
	assert.Equal(t, workflow.DefaultEmail.Body, prepared.EmailBody)
}

func TestSendNow_RequiresRecipient(t *testing.T) {
	m, _ := newMachine(t)
	sub := approvedSubmission(t, m)

	_, err := m.PrepareSend(sub, estimator, workflow.Email{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = m.PrepareSend(sub, estimator, workflow.Email{Recipient: "nope"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMarkSendFailed_NoAudit(t *testing.T) {
	m, _ := newMachine(t)
	sub := approvedSubmission(t, m)

	failed := m.MarkSendFailed(sub, "mailbox unavailable")
	assert.Equal(t, domain.SendStatusFailed, failed.SendStatus)
	assert.Equal(t, "mailbox unavailable", failed.SendError)
	assert.Len(t, failed.AuditLog, len(sub.AuditLog))
}

func TestSchedule(t *testing.T) {
	m, clock := newMachine(t)
	sub := approvedSubmission(t, m)
	email := workflow.Email{Recipient: "client@example.ca"}

	at := clock.now.Add(2 * time.Hour)
	scheduled, err := m.Schedule(sub, estimator, email, at)
	require.NoError(t, err)
	assert.Equal(t, domain.SendStatusScheduled, scheduled.SendStatus)
	require.NotNil(t, scheduled.ScheduledSendAt)
	assert.True(t, at.Equal(*scheduled.ScheduledSendAt))
	assert.Len(t, scheduled.AuditLog, len(sub.AuditLog))

	_, err = m.Schedule(sub, estimator, email, clock.now.Add(-time.Minute))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = m.Schedule(sub, estimator, email, time.Time{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = m.Schedule(sub, estimator, workflow.Email{}, at)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSaveSendDraft(t *testing.T) {
	m, _ := newMachine(t)
	sub := approvedSubmission(t, m)

	saved, err := m.SaveSendDraft(sub, estimator, workflow.Email{Subject: "Brouillon", Body: "Bonjour"})
	require.NoError(t, err)
	assert.Equal(t, domain.SendStatusDraft, saved.SendStatus)
	assert.Equal(t, "Brouillon", saved.EmailSubject)
	assert.Equal(t, "Bonjour", saved.EmailBody)

	_, err = m.SaveSendDraft(sub, estimator, workflow.Email{Recipient: "bad"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
