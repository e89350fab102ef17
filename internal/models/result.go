package models

import "time"

const MessageNoReadableResumes = "no resumes could be read"

type RankedResume struct {
	Rank     int     `json:"rank"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

type UnreadableResume struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// RankingResult lives for a single request and is never stored.
type RankingResult struct {
	ID         string             `json:"id"`
	Results    []RankedResume     `json:"results"`
	Unreadable []UnreadableResume `json:"unreadable,omitempty"`
	Message    string             `json:"message,omitempty"`
	RankedAt   time.Time          `json:"ranked_at"`
}

func (r *RankingResult) Empty() bool {
	return r == nil || len(r.Results) == 0
}

type RankResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *RankingResult `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
