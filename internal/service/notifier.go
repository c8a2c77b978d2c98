package service

import (
	"context"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/logger"
	"promoplace-backend/internal/repository"
)

type notifierService struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewNotifierService(
	noteRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) NotifierService {
	return &notifierService{
		noteRepo: noteRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

// NotifyPromoter persists an in-app notification and sends an email to the
// promoter's linked account. Delivery failures are logged only; the caller's
// state change has already committed.
func (s *notifierService) NotifyPromoter(ctx context.Context, p *domain.Promoter, typ domain.NotificationType, title, message string) {
	note := &domain.Notification{
		UserID:  p.UserID,
		Type:    typ,
		Title:   title,
		Message: message,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to persist notification", "user_id", p.UserID, "type", typ, "error", err)
	}

	user, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		logger.Error("Failed to resolve promoter user for email", "user_id", p.UserID, "error", err)
		return
	}
	if err := s.emailSvc.Send(ctx, user.Email, title, message); err != nil {
		logger.Error("Failed to send notification email", "user_id", p.UserID, "error", err)
	}
}

// NotifyAdmins fans the notification out to every admin account.
func (s *notifierService) NotifyAdmins(ctx context.Context, typ domain.NotificationType, title, message string) {
	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		logger.Error("Failed to list admins for notification", "type", typ, "error", err)
		return
	}
	for _, admin := range admins {
		note := &domain.Notification{
			UserID:  admin.ID,
			Type:    typ,
			Title:   title,
			Message: message,
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Error("Failed to persist admin notification", "user_id", admin.ID, "error", err)
		}
		if err := s.emailSvc.Send(ctx, admin.Email, title, message); err != nil {
			logger.Error("Failed to send admin notification email", "user_id", admin.ID, "error", err)
		}
	}
}
