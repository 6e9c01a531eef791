package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{`true`, true, false},
		{`false`, false, false},
		{`"true"`, true, false},
		{`"TRUE"`, true, false},
		{`"false"`, false, false},
		{`"yes"`, false, false},
		{`1`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var req struct {
				V FlexBool `json:"v"`
			}
			err := json.Unmarshal([]byte(`{"v":`+tt.in+`}`), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, bool(req.V))
		})
	}
}

func TestNewAppointmentResponseWithoutParticipants(t *testing.T) {
	a := &models.Appointment{
		ID:             uuid.New(),
		PatientID:      uuid.New(),
		PractitionerID: uuid.New(),
		Date:           "2024-01-01",
		Time:           "10:00",
		Kind:           models.KindFollowup,
		Status:         models.StatusConfirmed,
	}

	resp := NewAppointmentResponse(a)
	assert.Equal(t, a.PatientID, resp.Patient.ID)
	assert.Empty(t, resp.Patient.Email)
	assert.Equal(t, a.PractitionerID, resp.Practitioner.ID)
	assert.Equal(t, models.KindFollowup, resp.AppointmentType)
}

func TestNewProfileResponseFormatsDate(t *testing.T) {
	u := &models.User{
		ID:          uuid.New(),
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Role:        models.RolePatient,
		DateOfBirth: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
	}

	p := NewProfileResponse(u)
	assert.Equal(t, "1990-05-17", p.DateOfBirth)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.Contains(t, string(b), `"firstName":"Jane"`)
}

func TestNewPractitionerResponseNeverNullSlices(t *testing.T) {
	p := NewPractitionerResponse(&models.User{ID: uuid.New(), Role: models.RolePractitioner})

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"specializations":[]`)
	assert.Contains(t, string(b), `"timeSlots":[]`)
}
