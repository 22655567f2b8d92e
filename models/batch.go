package models

// BatchRequest describes one user-triggered processing run. It lives
// only for the duration of that run; nothing about it is persisted.
type BatchRequest struct {
	VideoIDs []string
	Style    Style
}
