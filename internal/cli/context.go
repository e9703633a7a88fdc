// Package cli holds the pollctl commands. Each command is a kong struct with a
// Run method taking the shared *Context.
package cli

import (
	"encoding/json"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vncsmyrnk/slotpoll/internal/bootstrap"
)

type Context struct {
	App *bootstrap.App
	Out io.Writer
}

func (c *Context) printJSON(v any) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *Context) printTable(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := io.WriteString(c.Out, t.Render()+"\n")
	return err
}
