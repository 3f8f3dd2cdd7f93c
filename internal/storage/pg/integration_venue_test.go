package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitespot-dev/nitespot/shared/domain"
)

func TestVenueCRUD(t *testing.T) {
	data := domain.VenueCreationData{
		Name:         "Neon Garden",
		Location:     "12 Canal St",
		Description:  "Rooftop bar",
		OpeningHours: "18:00-02:00",
		Rating:       4.5,
		IsPremium:    true,
		ImageURL:     "/media/venues/neon.jpg",
		Amenities:    domain.Amenities{"rooftop", "cocktails"},
	}
	id, err := storage.CreateVenue(data)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	venue, err := storage.Venue(id)
	require.NoError(t, err)
	assert.Equal(t, "Neon Garden", venue.Name)
	assert.Equal(t, "18:00-02:00", venue.OpeningHours)
	assert.Equal(t, 4.5, venue.Rating)
	assert.True(t, venue.IsPremium)
	assert.Equal(t, domain.Amenities{"rooftop", "cocktails"}, venue.Amenities)
	assert.False(t, venue.CreatedAt.IsZero())

	data.Name = "Neon Garden II"
	data.Rating = 4.8
	require.NoError(t, storage.UpdateVenue(id, data))
	venue, err = storage.Venue(id)
	require.NoError(t, err)
	assert.Equal(t, "Neon Garden II", venue.Name)
	assert.Equal(t, 4.8, venue.Rating)

	require.NoError(t, storage.DeleteVenue(id))
	_, err = storage.Venue(id)
	requireStatusCode(t, err, 404)

	err = storage.UpdateVenue(id, data)
	requireStatusCode(t, err, 404)
	err = storage.DeleteVenue(id)
	requireStatusCode(t, err, 404)
}

func TestVenues(t *testing.T) {
	_, err := storage.CreateVenue(domain.VenueCreationData{Name: "List A", Rating: 3})
	require.NoError(t, err)
	_, err = storage.CreateVenue(domain.VenueCreationData{Name: "List B", Rating: 5})
	require.NoError(t, err)

	venues, err := storage.Venues()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(venues), 2)
	// Higher rated venues come first.
	for i := 1; i < len(venues); i++ {
		assert.GreaterOrEqual(t, venues[i-1].Rating, venues[i].Rating)
	}
}

func TestDeleteVenueCleansUp(t *testing.T) {
	userId := mustSaveUser(t, "venueowner@example.com")
	venueId, err := storage.CreateVenue(domain.VenueCreationData{Name: "Doomed"})
	require.NoError(t, err)
	require.NoError(t, storage.AssignVenue(userId, venueId))

	_, err = storage.CreateComment(domain.CommentCreationData{
		Parent:  domain.FeedParent{Kind: domain.ParentVenue, Id: venueId},
		Author:  domain.CommentAuthor{Id: userId, Name: "tester"},
		Content: "great place",
	})
	require.NoError(t, err)

	require.NoError(t, storage.DeleteVenue(venueId))

	comments, err := storage.Comments(domain.FeedParent{Kind: domain.ParentVenue, Id: venueId}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, comments)

	user, err := storage.UserById(userId)
	require.NoError(t, err)
	assert.NotContains(t, user.VenueIds, venueId)
}
