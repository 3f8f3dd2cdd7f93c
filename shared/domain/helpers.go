package domain

// CanModifyComment is the display-layer authorization gate: a comment is
// editable/deletable by its author or by an admin. Storage rules must
// mirror this predicate.
func CanModifyComment(viewer *Viewer, c *Comment) bool {
	if viewer == nil || c == nil {
		return false
	}
	return viewer.Id == c.Author.Id || viewer.Admin()
}

// OwnsVenue reports whether the user manages the given venue.
func (u *User) OwnsVenue(id VenueId) bool {
	for _, v := range u.VenueIds {
		if v == id {
			return true
		}
	}
	return false
}

// Bookmarked reports whether the user bookmarked the given event.
func (u *User) Bookmarked(id EventId) bool {
	for _, e := range u.BookmarkedEvents {
		if e == id {
			return true
		}
	}
	return false
}
