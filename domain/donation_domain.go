package domain

import (
	"time"
)

var (
	MessageSuccessGetDonations       = "donations retrieved successfully"
	MessageSuccessGetDonationSummary = "donation statistics retrieved successfully"

	MessageFailedGetDonations       = "failed to retrieve donations"
	MessageFailedGetDonationSummary = "failed to retrieve donation statistics"

	ErrDonationNotFound = NewError(KindNotFound, "donation not found")
)

const DonationCompleted = "completed"

type (
	DonationFilter struct {
		DonorEmail string
		BloodGroup string
		Page       int
		Limit      int
	}

	Donation struct {
		ID              string    `json:"id"`
		RequestID       string    `json:"request_id"`
		DonorEmail      string    `json:"donor_email"`
		DonorName       string    `json:"donor_name,omitempty"`
		DonorPhone      string    `json:"donor_phone,omitempty"`
		DonorBloodGroup string    `json:"donor_blood_group"`
		PatientName     string    `json:"patient_name"`
		BloodGroup      string    `json:"blood_group"`
		Units           int       `json:"units"`
		Hospital        string    `json:"hospital"`
		DonationDate    time.Time `json:"donation_date"`
		Status          string    `json:"status"`
		AssignedBy      string    `json:"assigned_by"`
		CreatedAt       time.Time `json:"created_at"`
	}

	DonationStatistics struct {
		TotalDonations int            `json:"total_donations"`
		TotalUnits     int            `json:"total_units"`
		UnitsByGroup   map[string]int `json:"units_by_group"`
		UniqueDonors   int            `json:"unique_donors"`
	}
)
