package service

import (
	"context"
	"log/slog"
	"net/url"
	"testing"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/domain"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

// recordingContacts keeps every message that reaches the repository
type recordingContacts struct {
	domain.ContactRepository
	saved []domain.ContactMessage
}

func (r *recordingContacts) SaveMessage(ctx context.Context, msg *domain.ContactMessage) error {
	r.saved = append(r.saved, *msg)
	return r.ContactRepository.SaveMessage(ctx, msg)
}

func TestContactSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	contacts := &recordingContacts{ContactRepository: f.contacts}
	f.contact = NewContactService(contacts, whatsapp.NewLinkBuilder("201013928114"),
		noop.NewTracerProvider().Tracer("test"), metricnoop.NewMeterProvider().Meter("test"), slog.New(slog.DiscardHandler))

	_, err := f.contact.Submit(ctx, &dto.ContactRequest{Name: "Sara"})
	assert.ErrorIs(t, err, domain.ErrInvalidContact)

	resp, err := f.contact.Submit(ctx, &dto.ContactRequest{
		Name: "Sara", Email: "sara@example.com", Phone: "0100", Subject: "Quote", Message: "Price of ECG?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)

	u, err := url.Parse(resp.ChatURL)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("text"), "الرسالة: Price of ECG?")

	require.Len(t, contacts.saved, 1)
	assert.Equal(t, resp.ID, contacts.saved[0].ID)
	assert.Equal(t, "Sara", contacts.saved[0].Name)
}

func TestNewsletterSubscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.contact.Subscribe(ctx, &dto.NewsletterRequest{Email: " Sara@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "sara@example.com", resp.Email)

	_, err = f.contact.Subscribe(ctx, &dto.NewsletterRequest{Email: "sara@example.com"})
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	_, err = f.contact.Subscribe(ctx, &dto.NewsletterRequest{Email: "Sara <SARA@example.com>"})
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	_, err = f.contact.Subscribe(ctx, &dto.NewsletterRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}
