package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/mail"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/util"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type ContactService struct {
	Repo   *repo.GormRepo
	Mailer mail.Sender
	Inbox  string
}

// Submit stores the message first. The notification mail is best effort.
func (s *ContactService) Submit(ctx context.Context, req transport.ContactRequest) (*models.Contact, error) {
	l := logging.FromContext(ctx).With("svc", "contact.submit")

	c := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if c.Name == "" || c.Email == "" || c.Message == "" {
		return nil, fmt.Errorf("name, email and message are required: %w", ErrValidation)
	}
	if err := s.Repo.CreateContact(ctx, c); err != nil {
		l.Error("contact_store_failed", "error", err)
		return nil, storeErr("store contact", err)
	}

	if s.Mailer != nil && s.Inbox != "" {
		subject := c.Subject
		if subject == "" {
			subject = "New contact request"
		}
		body := fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", c.Name, c.Email, c.Phone, c.Message)
		if err := s.Mailer.Send(ctx, s.Inbox, subject, body); err != nil {
			l.Warn("contact_mail_failed", "contact_id", c.ID, "error", err)
		}
	}
	return c, nil
}

func (s *ContactService) ListContacts(ctx context.Context, page, size int) (int64, []models.Contact, error) {
	offset, limit := util.Calculate(page, size)
	total, items, err := s.Repo.ListContacts(ctx, offset, limit)
	if err != nil {
		return 0, nil, storeErr("list contacts", err)
	}
	return total, items, nil
}
