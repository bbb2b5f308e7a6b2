package usecase

import (
	"context"

	"github.com/ragingtiger/amznbot/internal/models"
)

// Source produces one snapshot per tracked product each cycle.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Product, error)
}

type Notifier interface {
	PostMessage(ctx context.Context, channel, text string) error
}

type ItemLookup interface {
	Lookup(ctx context.Context, ids []string) ([]models.Product, error)
}

type ItemSearch interface {
	Search(ctx context.Context, keywords, searchIndex string) ([]models.Product, error)
}
