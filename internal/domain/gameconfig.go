package domain

import (
	"fmt"
	"time"
)

// RoundStatus enumerates the phases of a game round.
type RoundStatus string

const (
	RoundRegistration RoundStatus = "REGISTRATION"
	Round1Active      RoundStatus = "ROUND_1_ACTIVE"
	Round1Locked      RoundStatus = "ROUND_1_LOCKED"
	Round2Active      RoundStatus = "ROUND_2_ACTIVE"
	RoundAuctionPhase RoundStatus = "AUCTION_PHASE"
	Round3Active      RoundStatus = "ROUND_3_ACTIVE"
	RoundFinalized    RoundStatus = "FINALIZED"
)

// AllRoundStatuses lists valid round statuses in lifecycle order.
var AllRoundStatuses = []RoundStatus{
	RoundRegistration,
	Round1Active,
	Round1Locked,
	Round2Active,
	RoundAuctionPhase,
	Round3Active,
	RoundFinalized,
}

// GameConfig is the process-wide game configuration singleton. It is replaced
// wholesale by super-admin action; no merge semantics.
type GameConfig struct {
	CurrentRound   int         `json:"current_round"`
	RoundStatus    RoundStatus `json:"round_status"`
	RoundStartTime time.Time   `json:"round_start_time"`
	RoundEndTime   time.Time   `json:"round_end_time"`
	CashWeight     float64     `json:"cash_weight"`
	PropertyWeight float64     `json:"property_weight"`
	TokenWeight    float64     `json:"token_weight"`
	CreditWeight   float64     `json:"credit_weight"`
}

// DefaultGameConfig is the get-or-default initial state before the first
// administrative update.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		CurrentRound:   1,
		RoundStatus:    RoundRegistration,
		CashWeight:     0.4,
		PropertyWeight: 0.3,
		TokenWeight:    0.2,
		CreditWeight:   0.1,
	}
}

// Validate checks weight ranges and the round time window ordering before a
// replace is attempted.
func (c GameConfig) Validate() error {
	weights := map[string]float64{
		"cash_weight":     c.CashWeight,
		"property_weight": c.PropertyWeight,
		"token_weight":    c.TokenWeight,
		"credit_weight":   c.CreditWeight,
	}
	for name, w := range weights {
		if w < 0 || w > 1 {
			return ErrValidation(fmt.Sprintf("%s must be in [0,1], got %v", name, w))
		}
	}
	valid := false
	for _, s := range AllRoundStatuses {
		if c.RoundStatus == s {
			valid = true
			break
		}
	}
	if !valid {
		return ErrValidation(fmt.Sprintf("unknown round status: %s", c.RoundStatus))
	}
	if !c.RoundStartTime.IsZero() && !c.RoundEndTime.After(c.RoundStartTime) {
		return ErrValidation("round end time must be after round start time")
	}
	return nil
}
