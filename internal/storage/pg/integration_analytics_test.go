package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	before, err := storage.Totals()
	require.NoError(t, err)

	mustBookings(t, 1) // creates one user, one venue, one booking

	after, err := storage.Totals()
	require.NoError(t, err)
	assert.Equal(t, before.Users+1, after.Users)
	assert.Equal(t, before.Venues+1, after.Venues)
	assert.Equal(t, before.Bookings+1, after.Bookings)
}

func TestTopVenues(t *testing.T) {
	venueId, _, _ := mustBookings(t, 3)

	require.NoError(t, storage.RefreshBookingStats())

	stats, err := storage.TopVenues(100)
	require.NoError(t, err)
	require.NotEmpty(t, stats)
	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].BookingCount, stats[i].BookingCount)
	}

	var found bool
	for _, st := range stats {
		if st.VenueId == venueId {
			found = true
			assert.Equal(t, int64(3), st.BookingCount)
			assert.Equal(t, "Booking Venue", st.VenueName)
		}
	}
	assert.True(t, found, "expected booked venue in stats")
}
