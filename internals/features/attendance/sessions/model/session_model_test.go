package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStateAt(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	sess := SessionModel{
		SessionStartsAt: start,
		SessionEndsAt:   end,
		SessionIsActive: true,
	}

	assert.Equal(t, SessionScheduled, sess.StateAt(start.Add(-time.Minute)))
	assert.Equal(t, SessionOpen, sess.StateAt(start))              // batas bawah inklusif
	assert.Equal(t, SessionOpen, sess.StateAt(start.Add(time.Hour)))
	assert.Equal(t, SessionClosed, sess.StateAt(end))              // batas atas eksklusif
	assert.Equal(t, SessionClosed, sess.StateAt(end.Add(time.Hour)))

	// toggle admin menang atas jendela waktu
	sess.SessionIsActive = false
	assert.Equal(t, SessionClosed, sess.StateAt(start.Add(time.Hour)))
}

func TestSessionFence(t *testing.T) {
	lat, lng, radius := 40.7128, -74.006, 75.0

	t.Run("no location → nil", func(t *testing.T) {
		sess := SessionModel{}
		assert.Nil(t, sess.Fence(100))
	})

	t.Run("location with explicit radius", func(t *testing.T) {
		sess := SessionModel{SessionLat: &lat, SessionLng: &lng, SessionRadiusM: &radius}
		f := sess.Fence(100)
		assert.NotNil(t, f)
		assert.Equal(t, 75.0, f.RadiusM)
		assert.Equal(t, lat, f.Center.Lat.Float())
	})

	t.Run("location without radius uses default", func(t *testing.T) {
		sess := SessionModel{SessionLat: &lat, SessionLng: &lng}
		f := sess.Fence(100)
		assert.NotNil(t, f)
		assert.Equal(t, 100.0, f.RadiusM)
	})
}
