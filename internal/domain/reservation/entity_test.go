package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
)

func testWindow(t *testing.T, hours int) booking.Window {
	t.Helper()
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	w, err := booking.NewWindow(start, start.Add(time.Duration(hours)*time.Hour))
	require.NoError(t, err)
	return w
}

func TestNewReservation(t *testing.T) {
	w := testWindow(t, 2)
	tests := []struct {
		name        string
		customerID  string
		roomID      string
		typ         Type
		partySize   int
		errExpected error
	}{
		{name: "正常な貸切予約", customerID: "cust-1", typ: TypeRestaurantFull, partySize: 20},
		{name: "正常な会議室予約", customerID: "cust-1", roomID: "room-1", typ: TypeMeetingRoom, partySize: 5},
		{name: "顧客ID未指定", customerID: "", typ: TypeRestaurantFull, partySize: 20, errExpected: ErrCustomerIDRequired},
		{name: "会議室予約に会議室ID未指定", customerID: "cust-1", typ: TypeMeetingRoom, partySize: 5, errExpected: ErrMeetingRoomIDRequired},
		{name: "貸切予約に会議室ID指定", customerID: "cust-1", roomID: "room-1", typ: TypeRestaurantFull, partySize: 20, errExpected: ErrUnexpectedMeetingRoomID},
		{name: "不明な予約種別", customerID: "cust-1", typ: Type("table"), partySize: 2, errExpected: ErrInvalidType},
		{name: "人数ゼロ", customerID: "cust-1", typ: TypeRestaurantFull, partySize: 0, errExpected: ErrInvalidPartySize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReservation(tt.customerID, "resto-1", tt.roomID, tt.typ, w, tt.partySize, "")
			err := r.Validate()
			if tt.errExpected != nil {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusPending, r.Status)
		})
	}
}

func TestReservation_Validate_InvalidWindow(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	r := NewReservation("cust-1", "resto-1", "", TypeRestaurantFull,
		booking.Window{Start: start, End: start.Add(-time.Hour)}, 4, "")
	assert.ErrorIs(t, r.Validate(), booking.ErrInvalidWindow)
}

func TestReservation_ComputePrice(t *testing.T) {
	tests := []struct {
		name      string
		typ       Type
		hours     int
		partySize int
		want      int
	}{
		{"貸切2時間20名は係数1.5", TypeRestaurantFull, 2, 20, 90000},
		{"貸切1時間10名は係数1.0", TypeRestaurantFull, 1, 10, 30000},
		{"貸切3時間60名は係数2.0", TypeRestaurantFull, 3, 60, 180000},
		{"会議室2時間5名", TypeMeetingRoom, 2, 5, 10000},
		{"会議室1時間11名は係数1.5", TypeMeetingRoom, 1, 11, 7500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roomID := ""
			if tt.typ == TypeMeetingRoom {
				roomID = "room-1"
			}
			r := NewReservation("cust-1", "resto-1", roomID, tt.typ, testWindow(t, tt.hours), tt.partySize, "")
			r.ComputePrice()
			assert.Equal(t, tt.want, r.Price)
		})
	}
}

func TestReservation_ChangeStatus(t *testing.T) {
	r := NewReservation("cust-1", "resto-1", "", TypeRestaurantFull, testWindow(t, 2), 4, "")

	require.NoError(t, r.ChangeStatus(booking.StatusConfirmed))
	assert.Equal(t, booking.StatusConfirmed, r.Status)

	// confirmed から pending には戻せない
	err := r.ChangeStatus(booking.StatusPending)
	assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
	assert.Equal(t, booking.StatusConfirmed, r.Status)

	require.NoError(t, r.ChangeStatus(booking.StatusCompleted))
	assert.ErrorIs(t, r.Cancel(), booking.ErrInvalidStatusTransition)
}

func TestReservation_Cancel(t *testing.T) {
	r := NewReservation("cust-1", "resto-1", "", TypeRestaurantFull, testWindow(t, 2), 4, "")
	require.NoError(t, r.Cancel())
	assert.Equal(t, booking.StatusCancelled, r.Status)

	// 終端状態からの再キャンセルは不可
	assert.ErrorIs(t, r.Cancel(), booking.ErrInvalidStatusTransition)
}
