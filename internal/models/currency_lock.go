package models

import "time"

// CurrencyLock pins a tenant to one currency from its first issuance on.
type CurrencyLock struct {
	TenantID     string     `json:"tenantID"`
	Locked       bool       `json:"locked"`
	CurrencyCode string     `json:"currencyCode"`
	LockedAt     *time.Time `json:"lockedAt,omitempty"`
}
