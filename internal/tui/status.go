package tui

// Canonical short status messages used across the app.
const (
	MsgRefreshing     = "Refreshing…"
	MsgShowingUnread  = "Showing unread"
	MsgShowingAll     = "Showing all"
	MsgNothingToMark  = "No item selected"
	MsgStoreReadOnly  = "Item store unreadable; changes will not be saved"
	MsgRefreshRunning = "Refresh already running"
)
