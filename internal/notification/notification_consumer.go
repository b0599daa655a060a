package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hris-portal/internal/events"
	"hris-portal/internal/messaging/kafka/consumer"
	"hris-portal/internal/shared/access"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Topics the notification consumer subscribes to.
var Topics = []string{
	events.EmployeeLifecycleTopic,
	events.LeaveLifecycleTopic,
	events.EvaluationLifecycleTopic,
}

// EventHandler turns lifecycle events into notifications.
type EventHandler struct {
	service Service
	repo    Repository
	logger  *zap.Logger
}

var _ consumer.EventHandler = (*EventHandler)(nil)

func NewEventHandler(service Service, repo Repository, logger ...*zap.Logger) *EventHandler {
	l := zap.L().Named("notification.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.consumer")
	}
	return &EventHandler{service: service, repo: repo, logger: l}
}

func (h *EventHandler) HandleEvent(ctx context.Context, eventType string, payload []byte) error {
	switch eventType {
	case events.EmployeeCreatedType:
		var ev events.EmployeeCreatedEvent
		if err := decode(payload, &ev); err != nil {
			return err
		}
		return h.employeeCreated(ctx, ev)
	case events.LeaveSubmittedType:
		var ev events.LeaveSubmittedEvent
		if err := decode(payload, &ev); err != nil {
			return err
		}
		return h.leaveSubmitted(ctx, ev)
	case events.LeaveDecidedType:
		var ev events.LeaveDecidedEvent
		if err := decode(payload, &ev); err != nil {
			return err
		}
		return h.leaveDecided(ctx, ev)
	case events.EvaluationFinalizedType:
		var ev events.EvaluationFinalizedEvent
		if err := decode(payload, &ev); err != nil {
			return err
		}
		return h.evaluationFinalized(ctx, ev)
	default:
		h.logger.Debug("ignoring event", zap.String("event_type", eventType))
		return nil
	}
}

func decode(payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", consumer.ErrPermanent, err)
	}
	return nil
}

func (h *EventHandler) employeeCreated(ctx context.Context, ev events.EmployeeCreatedEvent) error {
	staff, err := h.repo.FindUsersByRole(ctx, ev.CompanyID, []string{access.RoleAdmin, access.RoleHR})
	if err != nil {
		return err
	}
	if _, err := h.service.Deliver(ctx, ev.CompanyID, Message{
		Type:        TypeEmployeeCreated,
		ReferenceID: ev.EmployeeID,
		Title:       "New employee " + ev.FullName,
		Body:        fmt.Sprintf("%s (%s) was added to the employee list.", ev.FullName, ev.EmployeeNumber),
	}, staff); err != nil {
		return err
	}

	if ev.EmployeeID == "" {
		return nil
	}
	self := Contact{
		Recipient: Recipient{Type: RecipientEmployee, ID: ev.EmployeeID},
		Name:      ev.FullName,
		Email:     ev.Email,
	}
	_, err = h.service.Deliver(ctx, ev.CompanyID, Message{
		Type:        TypeWelcome,
		ReferenceID: ev.EmployeeID,
		Title:       "Welcome to the employee portal",
		Body:        "Your employee record " + ev.EmployeeNumber + " is ready. Ask HR for your portal password.",
	}, []Contact{self})
	return err
}

func (h *EventHandler) leaveSubmitted(ctx context.Context, ev events.LeaveSubmittedEvent) error {
	to, err := h.repo.FindUsersByRole(ctx, ev.CompanyID, []string{access.RoleHR})
	if err != nil {
		return err
	}
	if ev.DepartmentID != "" {
		supervisors, err := h.repo.FindDepartmentSupervisors(ctx, ev.CompanyID, ev.DepartmentID)
		if err != nil {
			return err
		}
		to = append(to, supervisors...)
	}

	_, err = h.service.Deliver(ctx, ev.CompanyID, Message{
		Type:        TypeLeaveSubmitted,
		ReferenceID: ev.LeaveID,
		Title:       fmt.Sprintf("%s request from %s", ev.Kind, ev.EmployeeName),
		Body:        fmt.Sprintf("%s requested %s from %s to %s.", ev.EmployeeName, ev.LeaveType, ev.StartDate, ev.EndDate),
	}, to)
	return err
}

func (h *EventHandler) leaveDecided(ctx context.Context, ev events.LeaveDecidedEvent) error {
	self, err := h.employee(ctx, ev.CompanyID, ev.EmployeeID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your request for %s to %s was %s.", ev.StartDate, ev.EndDate, ev.Status)
	if ev.ReviewNote != "" {
		body += " Note: " + ev.ReviewNote
	}
	_, err = h.service.Deliver(ctx, ev.CompanyID, Message{
		Type:        TypeLeaveDecided,
		ReferenceID: ev.LeaveID,
		Title:       "Leave request " + ev.Status,
		Body:        body,
	}, []Contact{self})
	return err
}

func (h *EventHandler) evaluationFinalized(ctx context.Context, ev events.EvaluationFinalizedEvent) error {
	self, err := h.employee(ctx, ev.CompanyID, ev.EmployeeID)
	if err != nil {
		return err
	}

	_, err = h.service.Deliver(ctx, ev.CompanyID, Message{
		Type:        TypeEvaluationFinalized,
		ReferenceID: ev.EvaluationID,
		Title:       "Evaluation " + ev.PeriodKey + " finalized",
		Body:        fmt.Sprintf("Your final rating is %.2f (%s). Please review and acknowledge it.", ev.FinalRating, ev.Adjectival),
	}, []Contact{self})
	return err
}

func (h *EventHandler) employee(ctx context.Context, companyID, employeeID string) (Contact, error) {
	c, err := h.repo.FindEmployee(ctx, companyID, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Contact{}, fmt.Errorf("%w: employee %s not found", consumer.ErrPermanent, employeeID)
	}
	return c, err
}
