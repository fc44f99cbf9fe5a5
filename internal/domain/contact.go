package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidContact    = errors.New("name, email, phone, subject and message are required")
	ErrInvalidEmail      = errors.New("a valid email address is required")
	ErrAlreadySubscribed = errors.New("email is already subscribed")
)

// ContactStatus tracks the handling of a contact message
type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in_progress"
	ContactResolved   ContactStatus = "resolved"
	ContactClosed     ContactStatus = "closed"
)

// ContactMessage is a message sent through the contact form
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
}

// NewContactMessage validates the form fields and builds a new message
func NewContactMessage(name, email, phone, subject, message string) (*ContactMessage, error) {
	msg := &ContactMessage{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Subject:   strings.TrimSpace(subject),
		Message:   strings.TrimSpace(message),
		Status:    ContactNew,
		CreatedAt: time.Now(),
	}
	if msg.Name == "" || msg.Email == "" || msg.Phone == "" || msg.Subject == "" || msg.Message == "" {
		return nil, ErrInvalidContact
	}
	return msg, nil
}

// Subscription is a newsletter subscription
type Subscription struct {
	Email        string
	Active       bool
	SubscribedAt time.Time
}

// NewSubscription validates the email address and keys the subscription
// by the bare lower-cased address, so "Bob <bob@x.io>" and "bob@x.io" match.
func NewSubscription(email string) (*Subscription, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidEmail
	}
	return &Subscription{Email: strings.ToLower(addr.Address), Active: true, SubscribedAt: time.Now()}, nil
}
