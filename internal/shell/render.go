package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/colonyops/dueline/internal/core/styles"
	"github.com/colonyops/dueline/internal/core/todo"
	"github.com/colonyops/dueline/internal/core/user"
	"github.com/colonyops/dueline/internal/dueline"
)

var todoHeaders = []string{"#", "ID", "TITLE", "PRIORITY", "DUE", "ALERT", "REPEAT", "STATUS", "DAYS"}

const (
	colPriority = 3
	colStatus   = 7
	colDays     = 8
)

func priorityStyle(p todo.Priority) (lipgloss.Style, bool) {
	switch p {
	case todo.PriorityHigh:
		return styles.PriorityHighStyle, true
	case todo.PriorityMedium:
		return styles.PriorityMediumStyle, true
	case todo.PriorityLow:
		return styles.PriorityLowStyle, true
	}
	return lipgloss.Style{}, false
}

// renderTodos draws items as a table. Days counts down to the due date
// relative to now.
func renderTodos(w io.Writer, items []todo.Item, now time.Time) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, styles.MutedStyle.Render("no todos"))
		return
	}

	rows := make([][]string, 0, len(items))
	for i, it := range items {
		days := ""
		if d, ok := it.DaysUntilDue(now); ok {
			days = strconv.Itoa(d)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			it.ID,
			it.Title,
			string(it.Priority),
			it.FormattedDueDate(),
			it.AlertDate,
			it.Repetition,
			string(it.Status),
			days,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorderStyle).
		Headers(todoHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}
			cell := styles.TableCellStyle
			switch col {
			case colPriority:
				if style, ok := priorityStyle(todo.Priority(rows[row][colPriority])); ok {
					return cell.Inherit(style)
				}
			case colStatus:
				if rows[row][colStatus] == string(todo.StatusCompleted) {
					return cell.Inherit(styles.StatusCompletedStyle)
				}
				return cell.Inherit(styles.StatusInProgressStyle)
			case colDays:
				if strings.HasPrefix(rows[row][colDays], "-") {
					return cell.Inherit(styles.OverdueStyle)
				}
			}
			return cell
		})

	_, _ = fmt.Fprintln(w, t.Render())
}

// renderBoard draws the in-progress and completed partitions side by side.
func renderBoard(w io.Writer, board dueline.Board) {
	column := func(title string, items []todo.Item, icon string) string {
		var b strings.Builder
		b.WriteString(styles.BoardTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items))))
		b.WriteString("\n")
		if len(items) == 0 {
			b.WriteString(styles.MutedStyle.Render("nothing here"))
		}
		for i, it := range items {
			if i > 0 {
				b.WriteString("\n")
			}
			line := icon + " " + it.Title
			if due := it.FormattedDueDate(); due != "" {
				line += " " + styles.MutedStyle.Render(due)
			}
			b.WriteString(line)
		}
		return styles.BoardColumnStyle.Render(b.String())
	}

	_, _ = fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		column("In progress", board.InProgress, styles.IconPending),
		column("Completed", board.Completed, styles.IconDone),
	))
}

// renderUsers draws users as a table.
func renderUsers(w io.Writer, users []user.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorderStyle).
		Headers("ID", "NAME", "EMAIL").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}
			return styles.TableCellStyle
		})

	_, _ = fmt.Fprintln(w, t.Render())
}
