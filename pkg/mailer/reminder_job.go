package mailer

import "time"

// ReminderJob is the JSON payload put on the RabbitMQ queue for a due
// reminder email. One job per due task.
type ReminderJob struct {
	To           string     `json:"to"`
	Username     string     `json:"username"`
	TaskID       int64      `json:"task_id"`
	TaskTitle    string     `json:"task_title"`
	Description  string     `json:"description,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ReminderTime time.Time  `json:"reminder_time"`
}

// Subject builds the email subject for a reminder job.
func (j ReminderJob) Subject() string {
	return "Reminder: " + j.TaskTitle
}
