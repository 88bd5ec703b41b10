// Package notify carries user-facing outcome notifications for console
// operations, decoupled from how they are displayed.
package notify

import "github.com/rs/zerolog"

// Notifier receives success and error notifications from console
// operations.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to a zerolog logger.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info().Msg(msg)
}

func (n *LogNotifier) Error(msg string) {
	n.log.Error().Msg(msg)
}

// Recorder captures notifications in order. It is meant for tests.
type Recorder struct {
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) { r.Successes = append(r.Successes, msg) }
func (r *Recorder) Error(msg string)   { r.Errors = append(r.Errors, msg) }
