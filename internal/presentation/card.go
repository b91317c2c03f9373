package presentation

import (
	"fmt"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/types"
)

// Badge classes for the success probability pill.
const (
	BadgeHigh    = "high"
	BadgeMedium  = "medium"
	BadgeLow     = "low"
	BadgeUnknown = "unknown"
)

// Card is the display model of one university.
type Card struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Location    string   `json:"location"`
	RankText    string   `json:"rankText"`
	Probability string   `json:"probability"`
	Badge       string   `json:"badge"`
	MinIELTS    string   `json:"minIELTS"`
	MinTOEFL    string   `json:"minTOEFL"`
	Website     string   `json:"website,omitempty"`
	Majors      []string `json:"majors"`
	Reasoning   string   `json:"reasoning"`
}

// BadgeClass returns the badge style for a probability label, ignoring case.
func BadgeClass(probability string) string {
	switch strings.ToLower(probability) {
	case "high":
		return BadgeHigh
	case "medium":
		return BadgeMedium
	case "low":
		return BadgeLow
	default:
		return BadgeUnknown
	}
}

// NewCard builds the card for u.
func NewCard(u types.University) Card {
	rank := "QS Rank: N/A"
	if u.HasRanking() {
		rank = fmt.Sprintf("QS Rank: %d", u.QSRanking)
	}
	majors := u.RecommendedMajors
	if majors == nil {
		majors = []string{}
	}
	return Card{
		Title:       u.Name,
		Subtitle:    u.NameCN,
		Location:    u.Country,
		RankText:    rank,
		Probability: u.SuccessProbability,
		Badge:       BadgeClass(u.SuccessProbability),
		MinIELTS:    u.MinIELTS.Display(),
		MinTOEFL:    u.MinTOEFL.Display(),
		Website:     u.Website,
		Majors:      majors,
		Reasoning:   u.Reasoning,
	}
}

// Cards builds one card per university, in order.
func Cards(universities []types.University) []Card {
	cards := make([]Card, 0, len(universities))
	for _, u := range universities {
		cards = append(cards, NewCard(u))
	}
	return cards
}
