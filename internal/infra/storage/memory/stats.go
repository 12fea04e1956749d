package memory

import (
	"context"

	"camperhub/internal/app/services/ownerstats"
	domainbooking "camperhub/internal/domain/booking"
	domaincamper "camperhub/internal/domain/camper"
	domainuser "camperhub/internal/domain/user"
)

// StatsSource computes owner statistics by walking the in-memory stores. The
// Mongo source does the same with an aggregation pipeline; both report every
// user, including those without campers.
type StatsSource struct {
	Users    *UserRepository
	Campers  *CamperRepository
	Bookings *BookingRepository
}

func (s *StatsSource) OwnerStats(ctx context.Context) ([]ownerstats.Row, error) {
	users, err := s.Users.List(ctx, domainuser.ListFilter{})
	if err != nil {
		return nil, err
	}

	campersByOwner := make(map[domaincamper.OwnerID][]domaincamper.CamperID)
	for _, c := range s.Campers.All(ctx) {
		campersByOwner[c.Owner] = append(campersByOwner[c.Owner], c.ID)
	}
	bookingsByCamper := make(map[domaincamper.CamperID][]*domainbooking.Booking)
	for _, b := range s.Bookings.All(ctx) {
		bookingsByCamper[b.CamperID] = append(bookingsByCamper[b.CamperID], b)
	}

	rows := make([]ownerstats.Row, 0, len(users))
	for _, u := range users {
		row := ownerstats.Row{
			OwnerID:   string(u.ID),
			OwnerName: u.FullName(),
		}
		for _, camperID := range campersByOwner[domaincamper.OwnerID(u.ID)] {
			row.TotalCampers++
			for _, b := range bookingsByCamper[camperID] {
				row.TotalBookings++
				switch b.Status {
				case domainbooking.StatusPending:
					row.Pending++
				case domainbooking.StatusConfirmed:
					row.Confirmed++
				case domainbooking.StatusCancelled:
					row.Cancelled++
				case domainbooking.StatusCompleted:
					row.Completed++
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var _ ownerstats.Source = (*StatsSource)(nil)
