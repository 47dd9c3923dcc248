package redis

import (
	"fmt"

	"github.com/huynhanx03/chillibowl/pkg/settings"
)

// NewConnection creates a ReceiptStore and verifies the server answers.
func NewConnection(cfg *settings.Redis) (*ReceiptStore, error) {
	store := &ReceiptStore{
		config: cfg,
	}

	if err := store.connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return store, nil
}
