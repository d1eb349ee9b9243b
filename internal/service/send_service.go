package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/logger"
	"github.com/toiture-lv/quote-api/internal/mailer"
	"github.com/toiture-lv/quote-api/internal/repository"
	"github.com/toiture-lv/quote-api/internal/storage"
	"github.com/toiture-lv/quote-api/internal/workflow"
	"go.uber.org/zap"
)

// SystemActor performs scheduled sends
var SystemActor = domain.Actor{User: "system", Role: domain.RoleSystem}

type SendService struct {
	submissionRepo *repository.SubmissionRepository
	machine        *workflow.Machine
	mailer         mailer.Mailer
	archiver       *storage.Archiver
	now            func() time.Time
	logger         *zap.Logger
}

func NewSendService(
	submissionRepo *repository.SubmissionRepository,
	machine *workflow.Machine,
	m mailer.Mailer,
	archiver *storage.Archiver,
	logger *zap.Logger,
) *SendService {
	return &SendService{
		submissionRepo: submissionRepo,
		machine:        machine,
		mailer:         m,
		archiver:       archiver,
		now:            time.Now,
		logger:         logger,
	}
}

// SetClock replaces the clock used to pick due scheduled sends
func (s *SendService) SetClock(now func() time.Time) {
	s.now = now
}

// Send mails, schedules or stores a draft email for an approved submission
func (s *SendService) Send(ctx context.Context, id uuid.UUID, actor domain.Actor, req *domain.SendRequest) (*domain.SendResponse, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := workflow.Email{Recipient: req.RecipientEmail, Subject: req.Subject, Body: req.Body}

	var next *domain.Submission
	switch req.SendOption {
	case domain.SendNow:
		next, err = s.deliver(ctx, sub, actor, email)
	case domain.SendSchedule:
		if req.ScheduledAt == nil {
			return nil, domain.Validationf("scheduled_at is required to schedule a send")
		}
		next, err = s.machine.Schedule(sub, actor, email, *req.ScheduledAt)
		if err == nil {
			err = s.submissionRepo.Update(ctx, next)
		}
	case domain.SendDraft:
		next, err = s.machine.SaveSendDraft(sub, actor, email)
		if err == nil {
			err = s.submissionRepo.Update(ctx, next)
		}
	default:
		return nil, domain.Validationf("unknown send option %q", req.SendOption)
	}
	if err != nil {
		return nil, err
	}

	logger.WithActor(logger.WithSubmission(s.logger, next), actor).Info("send processed",
		zap.String("send_option", string(req.SendOption)),
		zap.String("send_status", string(next.SendStatus)),
	)
	return &domain.SendResponse{Status: "ok", SendStatus: next.SendStatus}, nil
}

// deliver mails the submission now. A mailer failure is saved as
// send_status=failed and returned as an upstream error.
func (s *SendService) deliver(ctx context.Context, sub *domain.Submission, actor domain.Actor, email workflow.Email) (*domain.Submission, error) {
	prepared, err := s.machine.PrepareSend(sub, actor, email)
	if err != nil {
		return nil, err
	}

	sendErr := s.mailer.Send(ctx, mailer.Message{
		To:      prepared.RecipientEmail,
		Subject: prepared.EmailSubject,
		Body:    prepared.EmailBody,
	})
	if sendErr != nil {
		failed := s.machine.MarkSendFailed(prepared, sendErr.Error())
		if err := s.submissionRepo.Update(ctx, failed); err != nil {
			s.logger.Error("failed to record send failure",
				zap.String("submission_id", sub.ID.String()),
				zap.Error(err),
			)
		}
		s.logger.Warn("mail delivery failed",
			zap.String("submission_id", sub.ID.String()),
			zap.Error(sendErr),
		)
		return nil, domain.Upstream("send mail", sendErr)
	}

	sent, err := s.machine.MarkSent(prepared, actor)
	if err != nil {
		return nil, err
	}
	if err := s.submissionRepo.Update(ctx, sent); err != nil {
		return nil, err
	}

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, sent)
		if err != nil {
			s.logger.Warn("failed to archive sent submission",
				zap.String("submission_id", sent.ID.String()),
				zap.Error(err),
			)
		} else {
			s.logger.Debug("sent submission archived",
				zap.String("submission_id", sent.ID.String()),
				zap.String("key", key),
			)
		}
	}
	return sent, nil
}

// DispatchResult counts the outcome of one scheduled-send pass
type DispatchResult struct {
	Due    int
	Sent   int
	Failed int
}

// DispatchDue sends every scheduled submission whose time has come
func (s *SendService) DispatchDue(ctx context.Context, limit int) (DispatchResult, error) {
	var result DispatchResult

	due, err := s.submissionRepo.ListDueScheduled(ctx, s.now().UTC(), limit)
	if err != nil {
		return result, err
	}
	result.Due = len(due)

	for i := range due {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		sub := &due[i]
		email := workflow.Email{Recipient: sub.RecipientEmail, Subject: sub.EmailSubject, Body: sub.EmailBody}

		if _, err := s.deliver(ctx, sub, SystemActor, email); err != nil {
			result.Failed++
			if !isUpstream(err) {
				// Not deliverable any more, stop retrying it
				failed := s.machine.MarkSendFailed(sub, err.Error())
				if uerr := s.submissionRepo.Update(ctx, failed); uerr != nil {
					s.logger.Error("failed to record send failure",
						zap.String("submission_id", sub.ID.String()),
						zap.Error(uerr),
					)
				}
			}
			s.logger.Warn("scheduled send failed",
				zap.String("submission_id", sub.ID.String()),
				zap.Error(err),
			)
			continue
		}
		result.Sent++
	}
	return result, nil
}
