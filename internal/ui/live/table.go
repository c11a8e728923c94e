package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

func newReviewTable(noColor bool) table.Model {
	t := table.New(
		table.WithColumns(reviewColumns(100)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(noColor))
	return t
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// reviewColumns splits the width between the question and both answers.
func reviewColumns(width int) []table.Column {
	const fixed = 4 + 2
	remaining := max(width-fixed-8, 30)
	question := remaining / 2
	answer := (remaining - question) / 2
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: question},
		{Title: "Your answer", Width: answer},
		{Title: "Correct answer", Width: remaining - question - answer},
		{Title: "", Width: 2},
	}
}

// reviewRows converts answered questions into table rows.
func reviewRows(history []AnswerRecord) []table.Row {
	rows := make([]table.Row, 0, len(history))
	for _, record := range history {
		rows = append(rows, table.Row{
			formatIndex(record.Index),
			formatQuestionText(record.Question),
			record.Selected,
			record.Answer,
			formatMark(record.Correct),
		})
	}
	return rows
}
