// Package viz renders results for the terminal: styled verdicts and
// labels (lipgloss), line plots of trajectory components (asciigraph), and
// boxed matrices.
//
// Styling degrades to plain text when the output is not a color terminal.
package viz
