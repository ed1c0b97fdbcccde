package utils

import (
	"testing"

	"blood-portal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidator_BloodGroupTag(t *testing.T) {
	InitValidator()

	valid := domain.AdjustInventoryRequest{BloodGroup: "AB-", Units: 3, Type: "add"}
	assert.NoError(t, Validate.Struct(valid))

	invalid := domain.AdjustInventoryRequest{BloodGroup: "C+", Units: 3, Type: "add"}
	assert.Error(t, Validate.Struct(invalid))
}

func TestValidator_CreateBloodRequest(t *testing.T) {
	InitValidator()

	req := domain.CreateBloodRequest{
		PatientName:   "Rahim",
		BloodGroup:    "O+",
		Units:         2,
		ContactNumber: "01710000000",
	}
	assert.NoError(t, Validate.Struct(req))

	req.Units = 0
	assert.Error(t, Validate.Struct(req))

	req.Units = 1
	req.Urgency = "critical"
	assert.Error(t, Validate.Struct(req))
}
