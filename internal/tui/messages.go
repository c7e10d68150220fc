package tui

import "builders-panel/internal/model"

type (
	listMsg   model.ListUpdate
	toastMsg  model.Notification
	unreadMsg int

	// expireMsg removes the toast with the given id.
	expireMsg uint64

	actionMsg struct {
		action string
		err    error
	}
)
