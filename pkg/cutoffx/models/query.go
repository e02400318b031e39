package models

// Filter narrows a cutoff query. Zero values leave a field unconstrained.
type Filter struct {
	Year     int    `json:"year,omitempty"`
	Category string `json:"category,omitempty"`
	Round    int    `json:"round,omitempty"`
	College  string `json:"college,omitempty"`
	Course   string `json:"course,omitempty"`
	Quota    string `json:"quota,omitempty"`
	MinRank  int    `json:"min_rank,omitempty"`
	MaxRank  int    `json:"max_rank,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// QueryResult is the response shape handed to API consumers.
type QueryResult struct {
	Success bool           `json:"success"`
	Data    []CutoffRecord `json:"data"`
	Total   int            `json:"total"`
	Error   string         `json:"error,omitempty"`
}
