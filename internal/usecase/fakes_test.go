package usecase

import (
	"context"
	"sync"

	"github.com/ragingtiger/amznbot/internal/models"
)

type fakeSource struct {
	name    string
	results [][]models.Product
	errs    []error
	calls   int
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(context.Context) ([]models.Product, error) {
	i := min(s.calls, len(s.results)-1)
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return nil, err
	}
	return s.results[i], nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	channels []string
	messages []string
	err      error
	posted   chan string
}

func (n *fakeNotifier) PostMessage(_ context.Context, channel, text string) error {
	n.mu.Lock()
	n.channels = append(n.channels, channel)
	n.messages = append(n.messages, text)
	n.mu.Unlock()
	if n.posted != nil {
		n.posted <- text
	}
	return n.err
}

func (n *fakeNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func product(id, price string) models.Product {
	return models.Product{ID: id, Title: "Item " + id, FormattedPrice: price}
}
