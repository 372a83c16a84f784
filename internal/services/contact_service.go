package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/ranking"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

type ContactService struct {
	Messages repository.ContactRepository
	Audit    Auditor
	Now      func() time.Time
}

func NewContactService(messages repository.ContactRepository, audit Auditor) *ContactService {
	return &ContactService{Messages: messages, Audit: audit, Now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, req dto.ContactReq) (*models.ContactMessage, error) {
	m := &models.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: s.Now().UTC(),
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, fail(ErrInvalidInput, "name, email and message are required")
	}
	if err := s.Messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ContactService) List(ctx context.Context, f models.ContactFilter, p ranking.Page) (dto.PageResp[models.ContactMessage], error) {
	items, total, err := s.Messages.List(ctx, f, p)
	if err != nil {
		return dto.PageResp[models.ContactMessage]{}, err
	}
	return newPage(items, p, total), nil
}

func (s *ContactService) MarkRead(ctx context.Context, admin Actor, id bson.ObjectID) (*models.ContactMessage, error) {
	return s.mark(ctx, admin, id, repository.ContactFieldRead, "read")
}

func (s *ContactService) MarkReplied(ctx context.Context, admin Actor, id bson.ObjectID) (*models.ContactMessage, error) {
	return s.mark(ctx, admin, id, repository.ContactFieldReplied, "replied")
}

func (s *ContactService) Delete(ctx context.Context, admin Actor, id bson.ObjectID) error {
	m, err := s.Messages.Delete(ctx, id)
	if err != nil {
		return fromRepo(err, "message")
	}
	s.Audit.Record(ctx, admin.ID, models.ActionContentModeration,
		fmt.Sprintf("Deleted contact message from %s", m.Email),
		map[string]any{"messageId": id.Hex()})
	return nil
}

func (s *ContactService) mark(ctx context.Context, admin Actor, id bson.ObjectID, field, label string) (*models.ContactMessage, error) {
	m, err := s.Messages.Mark(ctx, id, field)
	if err != nil {
		return nil, fromRepo(err, "message")
	}
	s.Audit.Record(ctx, admin.ID, models.ActionContentModeration,
		fmt.Sprintf("Marked contact message from %s as %s", m.Email, label),
		map[string]any{"messageId": id.Hex()})
	return m, nil
}
