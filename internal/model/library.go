package model

import "time"

// LibraryStatus tracks how a sent opener worked out
type LibraryStatus string

const (
	LibraryPending    LibraryStatus = "pending"
	LibrarySuccess    LibraryStatus = "success"
	LibraryFailed     LibraryStatus = "failed"
	LibraryInProgress LibraryStatus = "in_progress"
)

// Valid reports whether s is a known library status
func (s LibraryStatus) Valid() bool {
	switch s {
	case LibraryPending, LibrarySuccess, LibraryFailed, LibraryInProgress:
		return true
	}
	return false
}

// LibraryRecord is an opener the user saved for later
type LibraryRecord struct {
	ID          string        `json:"id"`
	Interests   []string      `json:"interests"`
	Opener      string        `json:"opener"`
	Category    string        `json:"category"`
	Emoji       string        `json:"emoji"`
	SuccessRate float64       `json:"success_rate"`
	CreatedAt   time.Time     `json:"createdAt"`
	Status      LibraryStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
}

// AddLibraryRequest is the request body for POST /v1/library
type AddLibraryRequest struct {
	Interests   []string `json:"interests"`
	Opener      string   `json:"opener"`
	Category    string   `json:"category"`
	Emoji       string   `json:"emoji"`
	SuccessRate float64  `json:"success_rate"`
}

// UpdateLibraryRequest is the request body for PATCH /v1/library/{id}
type UpdateLibraryRequest struct {
	Status LibraryStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"`
}

// LibraryStats counts library records per status
type LibraryStats struct {
	Total      int `json:"total"`
	Success    int `json:"success"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
	Failed     int `json:"failed"`
}
