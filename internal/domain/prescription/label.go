package prescription

import (
	"fmt"
	"time"
)

// RenderLabel formats the printed dispensing label for one drug of a
// prescription. The layout is fixed; downstream printing depends on the
// exact line order.
func RenderLabel(patientName, fileNumber string, d DrugInfo, date time.Time) string {
	return fmt.Sprintf(
		"name of patient: %s\n"+
			"file number: %s\n"+
			"drug name: %s\n"+
			"strength: %s\n"+
			"instructions: %s\n"+
			"warning: %s\n"+
			"date: %s",
		patientName, fileNumber, d.Name, d.Strength, d.Instructions, d.Warnings,
		date.Format("2006-01-02"))
}
