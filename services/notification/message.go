package notification

import (
	"fmt"
	"strings"

	"medivault/models"
)

// RenderReminderMessage builds the channel-agnostic notification text for a
// due reminder in the user's preferred language. Unknown languages fall back
// to English.
func RenderReminderMessage(med models.Medication, rem models.Reminder, language string) Message {
	timeOfDay := rem.ScheduledTime.Format("15:04")

	var b strings.Builder
	switch language {
	case "de":
		b.WriteString(fmt.Sprintf("Es ist %s: Zeit für %s", timeOfDay, med.Name))
		if med.Dosage != "" {
			b.WriteString(fmt.Sprintf(" (%s)", med.Dosage))
		}
		b.WriteString(".")
		if med.Frequency != "" {
			b.WriteString(fmt.Sprintf(" Einnahme: %s.", med.Frequency))
		}
		if med.Instructions != "" {
			b.WriteString(" " + med.Instructions)
		}
		return Message{
			Title: "Medikamenten-Erinnerung",
			Body:  b.String(),
		}
	default:
		b.WriteString(fmt.Sprintf("It's %s: time to take %s", timeOfDay, med.Name))
		if med.Dosage != "" {
			b.WriteString(fmt.Sprintf(" (%s)", med.Dosage))
		}
		b.WriteString(".")
		if med.Frequency != "" {
			b.WriteString(fmt.Sprintf(" Schedule: %s.", med.Frequency))
		}
		if med.Instructions != "" {
			b.WriteString(" " + med.Instructions)
		}
		return Message{
			Title: "Medication reminder",
			Body:  b.String(),
		}
	}
}
