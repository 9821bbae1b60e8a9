package dto

import (
	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/aggregator"
)

// NarrativeRequest is the raw material handed to the narrative generator.
type NarrativeRequest struct {
	Summary   aggregator.Summary `json:"summary"`
	Notes     string             `json:"notes"`
	Positions []entity.Position  `json:"positions"`
}
