package domain

import (
	"testing"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRoomStatus(t *testing.T) {
	tests := []struct {
		name        string
		doc         DocStatus
		maintenance bool
		draft       int
		active      int
		want        RoomStatus
	}{
		{"draft room", DocStatusDraft, false, 0, 0, RoomStatusDraft},
		{"draft room under maintenance", DocStatusDraft, true, 0, 1, RoomStatusDraft},
		{"cancelled room", DocStatusCancelled, false, 0, 0, RoomStatusCancelled},
		{"maintenance wins over leases", DocStatusSubmitted, true, 1, 1, RoomStatusMaintenance},
		{"submitted lease", DocStatusSubmitted, false, 0, 1, RoomStatusOccupied},
		{"submitted and draft leases", DocStatusSubmitted, false, 2, 1, RoomStatusOccupied},
		{"draft lease only", DocStatusSubmitted, false, 1, 0, RoomStatusReserved},
		{"no leases", DocStatusSubmitted, false, 0, 0, RoomStatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRoomStatus(tt.doc, tt.maintenance, tt.draft, tt.active))
		})
	}
}

func TestRoom_SubmitCreatesItemOnce(t *testing.T) {
	r := &Room{Airport: "JFK", RoomNumber: 12}
	r.Autoname("JFK")
	assert.Equal(t, "JFK12", r.Name)

	require.NoError(t, r.Submit(UOMWeek))
	assert.Equal(t, "JFK12", r.ItemCode)
	assert.Equal(t, UOMWeek, r.UOM)
	assert.False(t, r.EnsureItem(UOMMonth))
	assert.Equal(t, UOMWeek, r.UOM)

	assert.True(t, apperr.Is(r.Submit(UOMWeek), apperr.CodeInvalidState))
}

func TestRoom_Cancel(t *testing.T) {
	r := &Room{Name: "JFK12", DocStatus: DocStatusSubmitted}
	assert.ErrorContains(t, r.Cancel(1), "submitted lease")
	require.NoError(t, r.Cancel(0))
	assert.Equal(t, DocStatusCancelled, r.DocStatus)
}

func TestRoom_Validate(t *testing.T) {
	r := &Room{Airport: "JFK", RoomNumber: 0}
	assert.True(t, apperr.Is(r.Validate(), apperr.CodeValidation))

	r.RoomNumber = 3
	require.NoError(t, r.Validate())

	r.ApplyDefaultRentalRate(LeasingSettings{DefaultRentalRateCents: 2500})
	assert.Equal(t, int64(2500), r.RentalRateCents)
	r.ApplyDefaultRentalRate(LeasingSettings{DefaultRentalRateCents: 9900})
	assert.Equal(t, int64(2500), r.RentalRateCents)
}

func TestRoom_Leasable(t *testing.T) {
	r := &Room{Name: "JFK1"}
	assert.Error(t, r.Leasable())

	r.DocStatus = DocStatusSubmitted
	assert.NoError(t, r.Leasable())

	r.Maintenance = true
	assert.ErrorContains(t, r.Leasable(), "maintenance")
}

func TestLeasingSettings(t *testing.T) {
	s := LeasingSettings{}
	assert.Equal(t, UOMWeek, s.UOM())
	require.NoError(t, s.Validate())

	s.DefaultUOM = "Year"
	assert.True(t, apperr.Is(s.Validate(), apperr.CodeValidation))
}

func TestShop_Validate(t *testing.T) {
	s := &Shop{ShopNumber: 1, OwnedBy: "Coffee Ltd", ContactEmail: "owner@coffee.test"}
	require.NoError(t, s.Validate())

	s.ContactEmail = "not-an-email"
	assert.ErrorContains(t, s.Validate(), "contact email")

	s.ContactEmail = ""
	s.ShopNumber = 0
	assert.Error(t, s.Validate())
}
