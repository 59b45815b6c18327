package report

import "context"

const SettingMonthlyLeaseCost = "monthly_lease_cost"

// SettingsRepository stores clinic-wide key/value settings.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
