// Package ui styles terminal output for taskctl.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rpggio/taskpad/internal/domain/task"
)

// Sprint color functions for building styled strings.
var (
	Bold       = color.New(color.Bold).SprintFunc()
	Dim        = color.New(color.Faint).SprintFunc()
	Cyan       = color.New(color.FgCyan).SprintFunc()
	Green      = color.New(color.FgGreen).SprintFunc()
	Red        = color.New(color.FgRed).SprintFunc()
	Yellow     = color.New(color.FgYellow).SprintFunc()
	BoldCyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen  = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed    = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldWhite  = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// SetEnabled turns styling on or off for the whole process.
func SetEnabled(enabled bool) {
	color.NoColor = !enabled
}

// PriorityBadge returns a colored priority label.
func PriorityBadge(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return BoldRed("high")
	case task.PriorityMedium:
		return BoldYellow("medium")
	case task.PriorityLow:
		return BoldGreen("low")
	default:
		return Dim(string(p))
	}
}

// StatusIcon returns a colored status icon for compact table display.
func StatusIcon(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return Green("✓")
	case task.StatusInProgress:
		return Cyan("●")
	default:
		return Dim("◌")
	}
}

// StatusLabel returns a colored status name.
func StatusLabel(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return Green("completed")
	case task.StatusInProgress:
		return BoldCyan("in progress")
	default:
		return Dim("to do")
	}
}

// Success prints a green check line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Green("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Yellow("!"), fmt.Sprintf(format, args...))
}

// Error prints a red error line.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Red("✗"), fmt.Sprintf(format, args...))
}
