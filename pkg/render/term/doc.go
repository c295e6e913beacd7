// Package term renders profile state for the terminal with lipgloss.
//
// It mirrors the HTML views: a profile block, a table of the current
// repository page, a pagination line, the forks of the page and the
// followers and following lists. Loading panels render as dim skeleton
// bars and empty panels print the same messages as the web UI.
package term
