// Package status はUIに表示するステータス行を表します。
package status

// Level is the severity a status line is shown with.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

// Status is a single user-visible status message.
type Status struct {
	Text  string `json:"text"`
	Level Level  `json:"level"`
}

// FromError formats err the way failures are shown to the user.
func FromError(err error) Status {
	return Status{Text: "Error: " + err.Error(), Level: Error}
}
