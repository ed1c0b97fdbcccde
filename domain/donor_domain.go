package domain

import (
	"time"
)

type (
	Donor struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		Email          string     `json:"email"`
		Phone          string     `json:"phone,omitempty"`
		BloodGroup     string     `json:"blood_group"`
		Division       string     `json:"division,omitempty"`
		District       string     `json:"district,omitempty"`
		Upazila        string     `json:"upazila,omitempty"`
		TotalDonations int        `json:"total_donations"`
		LastDonation   *time.Time `json:"last_donation,omitempty"`
	}

	DonorMatchFilter struct {
		BloodGroup string
		Division   string
		District   string
		Limit      int
	}
)
