package views

import (
	"lendingpool/core"
)

// Account everything a user holds
type Account struct {
	UserID    string               `json:"user_id"`
	Positions []*core.PositionView `json:"positions"`
	Health    *core.Health         `json:"health"`
}

// HealthView renders an infinite factor as null
func HealthView(h *core.Health) interface{} {
	if !h.Infinite {
		return h
	}

	return struct {
		*core.Health
		Factor *string `json:"factor"`
	}{Health: h}
}
