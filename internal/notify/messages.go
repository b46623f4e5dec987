package notify

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
)

// NewReportMessage tells a staff member about a freshly filed report.
func NewReportMessage(to string, report *models.Report) Message {
	steps := "No steps provided"
	if report.Steps != nil && strings.TrimSpace(*report.Steps) != "" {
		steps = *report.Steps
	}
	reporter := "Anonymous"
	if report.Owner != nil {
		reporter = report.Owner.Username
	}

	var b strings.Builder
	b.WriteString("A new issue has been reported:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", report.Title)
	fmt.Fprintf(&b, "Type: %s\n", report.Type)
	fmt.Fprintf(&b, "Priority: %s\n", report.Priority)
	fmt.Fprintf(&b, "Description: %s\n\n", report.Description)
	fmt.Fprintf(&b, "Steps to Reproduce:\n%s\n\n", steps)
	fmt.Fprintf(&b, "Reported by: %s\n", reporter)

	return Message{
		To:      to,
		Subject: "New Issue Report: " + report.Title,
		Body:    b.String(),
	}
}

// StatusUpdateMessage tells the report owner their report changed status.
func StatusUpdateMessage(to string, report *models.Report) Message {
	body := fmt.Sprintf("Your reported issue has been updated:\n\nTitle: %s\nNew Status: %s\n\nYou can view the full details in your dashboard.\n",
		report.Title, report.Status)

	return Message{
		To:      to,
		Subject: "Issue Status Updated: " + report.Title,
		Body:    body,
	}
}
