package kiosk

import (
	"fmt"

	"backend-turnero/internal/models"
	"backend-turnero/internal/queue"
)

// Row - One line of the display.
type Row struct {
	Number   string
	Name     string
	Status   models.VesselStatus
	Boarding bool
	Next     bool
}

// View - Everything the kiosk draws for one snapshot.
type View struct {
	Rows      []Row
	Boarding  string
	Next      string
	Empty     bool
	Anomalies int
}

// BuildView - Snapshot to display description. Rows are numbered by their
// place on the board ("01", "02"...), not by stored position.
func BuildView(snapshot []models.Vessel) View {
	m := queue.Load(snapshot)
	vessels := m.Snapshot()

	v := View{
		Rows:      make([]Row, 0, len(vessels)),
		Empty:     len(vessels) == 0,
		Anomalies: len(m.Violations()),
	}

	var nextID string
	if n, ok := m.NextWaiting(); ok {
		nextID = n.ID
		v.Next = n.DisplayName
	}
	if b, ok := m.BoardingVessel(); ok {
		v.Boarding = b.DisplayName
	}

	for i, vessel := range vessels {
		v.Rows = append(v.Rows, Row{
			Number:   fmt.Sprintf("%02d", i+1),
			Name:     vessel.DisplayName,
			Status:   vessel.Status,
			Boarding: vessel.Status == models.StatusBoarding,
			Next:     vessel.ID == nextID,
		})
	}
	return v
}
