package domain

// FindConflict returns the first reservation on roomID whose stay overlaps stay,
// ignoring excludeID and reservations that no longer hold inventory.
func FindConflict(existing []Reservation, roomID string, stay DateRange, excludeID string) *Reservation {
	for i := range existing {
		r := &existing[i]
		if r.RoomID != roomID || !r.Status.HoldsInventory() {
			continue
		}
		if excludeID != "" && r.ReservationID == excludeID {
			continue
		}
		if r.Range().Overlaps(stay) {
			return r
		}
	}
	return nil
}
