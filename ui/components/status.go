package components

import (
	"github.com/Rorical/RoriPDF/ui/styles"
)

func RenderStatus(status string, serviceStatus string, inFlight int, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if inFlight > 0 {
		statusContent += " · waiting for answer" + LoadingDots(loadingDots)
	}
	if serviceStatus != "" {
		statusContent += " · service " + serviceStatus
	}

	return statusStyle.Render(statusContent)
}
