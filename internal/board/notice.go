package board

import (
	"kanban-board/internal/domain"
)

// Notice messages shown after a confirmed mutation
const (
	MsgCreated = "Task created successfully"
	MsgUpdated = "Task updated successfully"
	MsgDeleted = "Task deleted successfully"
)

// Level distinguishes success notices from failures
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notice is a transient message for the user
type Notice struct {
	Level   Level
	Message string
}

// Success builds a success notice
func Success(msg string) Notice {
	return Notice{Level: LevelSuccess, Message: msg}
}

// Failure builds an error notice
func Failure(msg string) Notice {
	return Notice{Level: LevelError, Message: msg}
}

// MovedMessage is the notice shown after a task changes column
func MovedMessage(column domain.Column) string {
	return "Task moved to " + column.Label()
}

// Notifier receives notices as the board changes
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
