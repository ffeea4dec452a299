package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
)

func uintPtr(v uint) *uint {
	return &v
}

func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket(
		vo.SubjectHardwareFailure,
		"Printer shows paper jam with no paper inside",
		Equipment{Brand: "HP", Model: "LaserJet 400", SerialNumber: "CN123", Category: "Printer", Area: "Finance"},
		7,
		uintPtr(3),
	)
	require.NoError(t, err)
	return tk
}

func reconstructedTicket(t *testing.T, status vo.TicketStatus, closedAt *time.Time) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ReconstructTicket(
		1,
		vo.SubjectMaintenance,
		"desc",
		Equipment{},
		status,
		7,
		nil, // supportID
		nil, // userID
		now, now,
		closedAt,
	)
	require.NoError(t, err)
	return tk
}

func TestNewTicket_Defaults(t *testing.T) {
	tk := newValidTicket(t)

	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, uint(7), tk.CustomerID())
	assert.Nil(t, tk.SupportID())
	assert.Nil(t, tk.ClosedAt())
	assert.Equal(t, "HP", tk.Equipment().Brand)
	assert.False(t, tk.CreatedAt().IsZero())
}

func TestNewTicket_Validation(t *testing.T) {
	tests := []struct {
		name       string
		subject    vo.Subject
		desc       string
		equipment  Equipment
		customerID uint
		wantErr    string
	}{
		{"invalid subject", vo.Subject("billing"), "desc", Equipment{}, 1, "invalid subject"},
		{"empty description", vo.SubjectOther, "   ", Equipment{}, 1, "description is required"},
		{"description too long", vo.SubjectOther, strings.Repeat("a", 5001), Equipment{}, 1, "description exceeds"},
		{"brand too long", vo.SubjectOther, "desc", Equipment{Brand: strings.Repeat("b", 256)}, 1, "equipment brand exceeds"},
		{"missing customer", vo.SubjectOther, "desc", Equipment{}, 0, "customer ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.subject, tt.desc, tt.equipment, tt.customerID, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewTicket_EquipmentLimitCountsCharacters(t *testing.T) {
	accented := strings.Repeat("á", maxEquipmentLength)

	tk, err := NewTicket(vo.SubjectOther, strings.Repeat("ñ", maxDescriptionLength), Equipment{Brand: accented, Area: accented}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, accented, tk.Equipment().Brand)

	_, err = NewTicket(vo.SubjectOther, "desc", Equipment{Area: accented + "á"}, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "area exceeds")
}

func TestNewTicket_EquipmentReportsFirstOverlongField(t *testing.T) {
	long := strings.Repeat("x", maxEquipmentLength+1)
	equipment := Equipment{Brand: long, Model: long, SerialNumber: long, Category: long, Area: long}

	for i := 0; i < 20; i++ {
		_, err := NewTicket(vo.SubjectOther, "desc", equipment, 1, nil)
		require.Error(t, err)
		assert.Equal(t, "equipment brand exceeds maximum length of 255 characters", err.Error())
	}

	equipment.Brand = ""
	_, err := NewTicket(vo.SubjectOther, "desc", equipment, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equipment model exceeds")
}

func TestNewTicket_TrimsInput(t *testing.T) {
	tk, err := NewTicket(vo.SubjectOther, "  broken  ", Equipment{Area: " Lobby "}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "broken", tk.Description())
	assert.Equal(t, "Lobby", tk.Equipment().Area)
}

func TestChangeStatus_ClosingSetsClosedAt(t *testing.T) {
	tk := newValidTicket(t)

	changed, err := tk.ChangeStatus(vo.StatusClosed)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, vo.StatusClosed, tk.Status())
	require.NotNil(t, tk.ClosedAt())
}

func TestChangeStatus_ReopenClearsClosedAt(t *testing.T) {
	closed := time.Now().UTC().Add(-time.Hour)
	tk := reconstructedTicket(t, vo.StatusClosed, &closed)

	changed, err := tk.ChangeStatus(vo.StatusInProgress)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, tk.ClosedAt())
}

func TestChangeStatus_SameStatusIsNoop(t *testing.T) {
	closed := time.Now().UTC().Add(-time.Hour)
	tk := reconstructedTicket(t, vo.StatusClosed, &closed)
	before := tk.UpdatedAt()

	changed, err := tk.ChangeStatus(vo.StatusClosed)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, closed, *tk.ClosedAt())
	assert.Equal(t, before, tk.UpdatedAt())
}

func TestChangeStatus_AnyTransitionAllowed(t *testing.T) {
	for _, from := range vo.AllStatuses() {
		for _, to := range vo.AllStatuses() {
			tk := reconstructedTicket(t, from, nil)
			_, err := tk.ChangeStatus(to)
			assert.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, tk.Status())
		}
	}
}

func TestChangeStatus_Invalid(t *testing.T) {
	tk := newValidTicket(t)
	_, err := tk.ChangeStatus(vo.TicketStatus("resolved"))
	assert.Error(t, err)
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

func TestAssignSupport(t *testing.T) {
	tk := newValidTicket(t)

	changed, err := tk.AssignSupport(uintPtr(4))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, tk.IsAssignedTo(4))

	changed, err = tk.AssignSupport(uintPtr(4))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = tk.AssignSupport(nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, tk.SupportID())

	_, err = tk.AssignSupport(uintPtr(0))
	assert.Error(t, err)
}

func TestUpdateDetails(t *testing.T) {
	tk := newValidTicket(t)

	changed, err := tk.UpdateDetails(tk.Subject(), tk.Description(), tk.Equipment())
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = tk.UpdateDetails(vo.SubjectSoftwareIssue, "Driver crash", Equipment{Brand: "Canon"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, vo.SubjectSoftwareIssue, tk.Subject())
	assert.Equal(t, "Canon", tk.Equipment().Brand)
	assert.Empty(t, tk.Equipment().Model)

	_, err = tk.UpdateDetails(vo.SubjectOther, "", Equipment{})
	assert.Error(t, err)
}

func TestSetID(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(10))
	assert.Error(t, tk.SetID(11))
	assert.Equal(t, uint(10), tk.ID())
}
