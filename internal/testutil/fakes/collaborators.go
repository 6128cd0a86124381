package fakes

import (
	"context"
	"sync"
)

// TxManager runs functions without a real transaction
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Notification message captured by Notifier
type Notification struct {
	Contact string
	Message string
}

// Notifier records notifications; Err makes every call fail
type Notifier struct {
	mu   sync.Mutex
	Sent []Notification
	Err  error
}

func (n *Notifier) Notify(_ context.Context, contact, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Sent = append(n.Sent, Notification{Contact: contact, Message: message})
	return nil
}

// Contacts static patient directory
type Contacts map[string]string

func (c Contacts) GetContact(_ context.Context, patientID string) (string, error) {
	contact, ok := c[patientID]
	if !ok {
		return "", ErrUnknownPatient
	}
	return contact, nil
}
