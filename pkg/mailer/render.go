package mailer

import (
	"bytes"
	"html/template"
	"strings"
)

const dateLayout = "Mon, 02 Jan 2006 15:04"

const reminderHTMLTpl = `<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#333;">
  <h2 style="margin-bottom:0.25em;">Task reminder</h2>
  <p>Hi {{.Username}},</p>
  <p>Your task <strong>{{.TaskTitle}}</strong> is waiting for you.</p>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  {{if .DueDate}}<p>Due: {{.DueDate.Format "Mon, 02 Jan 2006 15:04"}}</p>{{end}}
  <p style="color:#888;font-size:0.85em;">Reminder set for {{.ReminderTime.Format "Mon, 02 Jan 2006 15:04"}}</p>
</body>
</html>`

var reminderHTML = template.Must(template.New("reminder").Parse(reminderHTMLTpl))

// RenderReminder produces the text and HTML bodies for a reminder email.
func RenderReminder(job ReminderJob) (text, html string) {
	var b strings.Builder
	b.WriteString("Hi " + job.Username + ",\n\n")
	b.WriteString("Your task \"" + job.TaskTitle + "\" is waiting for you.\n")
	if job.Description != "" {
		b.WriteString("\n" + job.Description + "\n")
	}
	if job.DueDate != nil {
		b.WriteString("\nDue: " + job.DueDate.Format(dateLayout) + "\n")
	}
	b.WriteString("\nReminder set for " + job.ReminderTime.Format(dateLayout) + "\n")
	text = b.String()

	var h bytes.Buffer
	if err := reminderHTML.Execute(&h, job); err != nil {
		return text, ""
	}
	return text, h.String()
}
