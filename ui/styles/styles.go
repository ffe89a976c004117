package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/RoriPDF/internal/models"
)

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(width - 4)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

// DropZoneStyle frames the upload panel; the border lights up while a file
// is being dragged in.
func DropZoneStyle(active bool, width int) lipgloss.Style {
	border := lipgloss.Color("240")
	if active {
		border = lipgloss.Color("42")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 4)
}

func UploadStatusStyle(kind models.StatusKind) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch kind {
	case models.StatusLoading:
		return s.Foreground(lipgloss.Color("33"))
	case models.StatusSuccess:
		return s.Foreground(lipgloss.Color("42"))
	case models.StatusError:
		return s.Foreground(lipgloss.Color("196"))
	default:
		return s.Foreground(lipgloss.Color("245"))
	}
}

func SystemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 2)
}

func UserStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1).
		MarginLeft(2)
}

func AssistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("214")).
		Padding(0, 1).
		MarginLeft(2)
}

func LoadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(0, 1).
		MarginLeft(3)
}

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true)
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
}
