package memory

import (
	"context"

	"github.com/policlinic/clinic-backend-go/internal/domain/report"
)

type settingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) report.SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.settings[key]
	if !ok {
		return "", report.ErrSettingNotFound
	}
	return v, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.settings[key] = value
	return nil
}
