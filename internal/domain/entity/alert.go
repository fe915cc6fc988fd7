package entity

// AlertLevel separates failures from informational announcements.
type AlertLevel string

const (
	LevelError AlertLevel = "error"
	LevelInfo  AlertLevel = "info"
)

// Alert is a notification for the operations team. Error, Result and
// Solution may contain HTML fragments.
type Alert struct {
	Level    AlertLevel
	Error    string
	Result   string
	Solution string
}
