package domain

import "time"

// CurrencyLock pins a tenant to the currency of its first issued document.
// Created implicitly on first issuance, never deleted, transitions only
// once from unlocked to locked.
type CurrencyLock struct {
	TenantID     string     `json:"tenantID"` // Primary key
	Locked       bool       `json:"locked"`
	CurrencyCode string     `json:"currencyCode"`
	LockedAt     *time.Time `json:"lockedAt,omitempty"`
}
