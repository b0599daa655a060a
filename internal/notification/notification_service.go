package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "hris-portal/internal/notification/errors"
	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, companyID string, r Recipient, filter ListFilter) ([]NotificationResponse, int64, error)
	CountUnread(ctx context.Context, companyID string, r Recipient) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, companyID string, r Recipient, id string) error
	MarkAllRead(ctx context.Context, companyID string, r Recipient) (int64, error)

	// Deliver stores one notification per contact and e-mails the contacts that
	// have an address. Already delivered notifications are skipped.
	Deliver(ctx context.Context, companyID string, msg Message, to []Contact) (int, error)
}

// Message is the content shared by all recipients of one delivery.
type Message struct {
	Type        string
	ReferenceID string
	Title       string
	Body        string
}

type service struct {
	repo   Repository
	mailer Mailer
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, mailer Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		repo:   repo,
		mailer: mailer,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) List(ctx context.Context, companyID string, r Recipient, filter ListFilter) ([]NotificationResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, companyID, r, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]NotificationResponse, len(items))
	for i := range items {
		out[i] = toResponse(items[i])
	}
	return out, total, nil
}

func (s *service) CountUnread(ctx context.Context, companyID string, r Recipient) (UnreadCountResponse, error) {
	n, err := s.repo.CountUnread(ctx, companyID, r)
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Unread: n}, nil
}

func (s *service) MarkRead(ctx context.Context, companyID string, r Recipient, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	err := s.repo.MarkRead(ctx, companyID, r, id, s.now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notificationerrors.ErrNotificationNotFound
	}
	return err
}

func (s *service) MarkAllRead(ctx context.Context, companyID string, r Recipient) (int64, error) {
	return s.repo.MarkAllRead(ctx, companyID, r, s.now().UTC())
}

func (s *service) Deliver(ctx context.Context, companyID string, msg Message, to []Contact) (int, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	company, err := uuid.Parse(companyID)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, c := range to {
		recipientID, err := uuid.Parse(c.ID)
		if err != nil {
			log.Warn("skipping recipient with invalid id", zap.String("recipient_id", c.ID))
			continue
		}

		inserted, err := s.repo.Create(ctx, &Notification{
			CompanyID:     company,
			RecipientType: c.Type,
			RecipientID:   recipientID,
			Type:          msg.Type,
			ReferenceID:   msg.ReferenceID,
			Title:         msg.Title,
			Body:          msg.Body,
		})
		if err != nil {
			return delivered, err
		}
		if !inserted {
			continue
		}
		delivered++

		if s.mailer == nil || c.Email == "" {
			continue
		}
		// Mail failures do not undo the stored notification.
		if err := s.mailer.Send(ctx, c.Email, msg.Title, msg.Body); err != nil {
			log.Warn("send notification mail failed",
				zap.String("type", msg.Type),
				zap.String("recipient_id", c.ID),
				zap.Error(err),
			)
		}
	}

	log.Debug("notifications delivered",
		zap.String("type", msg.Type),
		zap.String("reference_id", msg.ReferenceID),
		zap.Int("delivered", delivered),
	)
	return delivered, nil
}

func toResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID.String(),
		Type:        n.Type,
		ReferenceID: n.ReferenceID,
		Title:       n.Title,
		Body:        n.Body,
		Read:        n.ReadAt != nil,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		at := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &at
	}
	return resp
}
