package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"cinemap/internal/movie"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// starSegments is the width of the rating control in every front end.
const starSegments = movie.MaxScore

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo: {"INFO", ansiBlue},
	statusOK:   {"OK", ansiGreen},
	statusWarn: {"WARN", ansiYellow},
}

func renderStatusLine(kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	line := fmt.Sprintf("[%s] %s", style.label, message)
	if colorize {
		return style.color + line + ansiReset
	}
	return line
}

// renderStars draws the ten segment rating control for m as text.
func renderStars(m movie.Movie, colorize bool) string {
	stars := movie.Stars(movie.StarFill(movie.Score(m), starSegments))
	if colorize {
		return ansiYellow + stars + ansiReset
	}
	return stars
}

// shouldColorize reports whether writer is a terminal that accepts ANSI
// colour. NO_COLOR disables colour regardless.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
