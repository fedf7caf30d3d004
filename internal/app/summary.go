package app

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/ui/output"
	"go.trai.ch/grove/internal/ui/style"
)

func (a *App) renderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(a.out, termenv.WithProfile(output.ColorProfile()))
}

// printSummary prints node counts per type and the recent action counts.
func (a *App) printSummary(nodes []*domain.Node, actions []domain.Action, elapsed time.Duration) {
	r := a.renderer()
	check := r.NewStyle().Foreground(style.Green).Render(style.Check)
	muted := r.NewStyle().Inherit(style.Muted)

	byType := make(map[string]int)
	for _, n := range nodes {
		byType[n.Type()]++
	}

	_, _ = fmt.Fprintf(a.out, "%s sourced %d nodes of %d types in %s\n",
		check, len(nodes), len(byType), elapsed.Round(time.Millisecond))

	if len(byType) > 0 {
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return r.NewStyle().Inherit(style.Header).PaddingRight(2)
				}
				return r.NewStyle().PaddingRight(2)
			}).
			Headers("TYPE", "NODES", "OWNER")
		for _, typeName := range slices.Sorted(maps.Keys(byType)) {
			owner, _ := a.state.TypeOwners().OwnerOf(typeName)
			t.Row(typeName, fmt.Sprint(byType[typeName]), owner)
		}
		_, _ = fmt.Fprintln(a.out, t.Render())
	}

	counts := make(map[domain.ActionType]int)
	for _, action := range actions {
		counts[action.Type]++
	}
	parts := []string{
		fmt.Sprintf("%d created", counts[domain.ActionCreateNode]),
		fmt.Sprintf("%d touched", counts[domain.ActionTouchNode]),
		fmt.Sprintf("%d deleted", counts[domain.ActionDeleteNode]),
	}
	_, _ = fmt.Fprintln(a.out, muted.Render("recent actions: "+strings.Join(parts, " "+style.Dot+" ")))
}

// printNodes prints nodes as a table sorted by type and id.
func (a *App) printNodes(nodes []*domain.Node) {
	if len(nodes) == 0 {
		_, _ = fmt.Fprintln(a.out, "no nodes")
		return
	}

	slices.SortFunc(nodes, func(x, y *domain.Node) int {
		return cmp.Or(cmp.Compare(x.Type(), y.Type()), cmp.Compare(x.ID, y.ID))
	})

	r := a.renderer()
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.NewStyle().Inherit(style.Header).PaddingRight(2)
			}
			return r.NewStyle().PaddingRight(2)
		}).
		Headers("ID", "TYPE", "OWNER", "PARENT")
	for _, n := range nodes {
		t.Row(n.ID, n.Type(), n.Owner(), n.Parent)
	}
	_, _ = fmt.Fprintln(a.out, t.Render())
}
