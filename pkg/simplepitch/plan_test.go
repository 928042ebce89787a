package simplepitch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

func TestPlan(t *testing.T) {
	brands := []simplepitch.Brand{brand("A", "s1", "s2"), brand("B", "s3"), brand("C", "s4")}
	doctors := []simplepitch.Doctor{
		{ID: "saved", Name: "Dr. Saved", Specialty: "x", AssignedBrandIDs: []string{"C"}, SavedSlideIDs: []string{"s4", "s1"}},
		{ID: "stale", Name: "Dr. Stale", Specialty: "x", AssignedBrandIDs: []string{"C", "A"}, SavedSlideIDs: []string{"gone"}},
		{ID: "plain", Name: "Dr. Plain", Specialty: "x", AssignedBrandIDs: []string{"B"}},
	}
	store := simplepitch.NewStore(brands, doctors)

	t.Run("saved playlist plays flat", func(t *testing.T) {
		nav, doctor, err := store.Plan(simplepitch.PresentationRequest{DoctorID: "saved"})
		require.NoError(t, err)
		require.NotNil(t, doctor)
		assert.Equal(t, "saved", doctor.ID)
		assert.Equal(t, simplepitch.ModeFlat, nav.Mode())
		assert.Equal(t, "s4", currentSlide(t, nav))
		assert.Equal(t, 2, nav.Current().Total)
	})

	t.Run("stale saved playlist falls back to assigned brands", func(t *testing.T) {
		nav, err := store.PitchPlan("stale")
		require.NoError(t, err)
		assert.Equal(t, simplepitch.ModeHierarchical, nav.Mode())
		got := nav.Brands()
		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].ID)
		assert.Equal(t, "C", got[1].ID)
	})

	t.Run("no saved playlist uses assigned brands", func(t *testing.T) {
		nav, err := store.PitchPlan("plain")
		require.NoError(t, err)
		assert.Equal(t, "s3", currentSlide(t, nav))
	})

	t.Run("explicit playlist wins", func(t *testing.T) {
		playlist := simplepitch.ResolveSelection(store.Brands(), simplepitch.NewSelection("s2"))
		nav, doctor, err := store.Plan(simplepitch.PresentationRequest{Playlist: playlist, DoctorID: "saved"})
		require.NoError(t, err)
		assert.Equal(t, "saved", doctor.ID)
		assert.Equal(t, simplepitch.ModeFlat, nav.Mode())
		assert.Equal(t, "s2", currentSlide(t, nav))
	})

	t.Run("brand preview", func(t *testing.T) {
		nav, doctor, err := store.Plan(simplepitch.PresentationRequest{BrandID: "B"})
		require.NoError(t, err)
		assert.Nil(t, doctor)
		require.Len(t, nav.Brands(), 1)
		assert.Equal(t, "s3", currentSlide(t, nav))
	})

	t.Run("full catalog", func(t *testing.T) {
		nav, _, err := store.Plan(simplepitch.PresentationRequest{})
		require.NoError(t, err)
		assert.Len(t, nav.Brands(), 3)
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, _, err := store.Plan(simplepitch.PresentationRequest{DoctorID: "ghost"})
		assert.ErrorIs(t, err, simplepitch.ErrDoctorNotFound)

		_, _, err = store.Plan(simplepitch.PresentationRequest{BrandID: "ghost"})
		assert.ErrorIs(t, err, simplepitch.ErrBrandNotFound)
	})
}
