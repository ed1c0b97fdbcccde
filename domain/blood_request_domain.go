package domain

import (
	"time"
)

var (
	MessageSuccessCreateBloodRequest = "blood request created successfully"
	MessageSuccessGetBloodRequests   = "blood requests retrieved successfully"
	MessageSuccessUpdateRequestState = "blood request status updated successfully"
	MessageSuccessAssignDonor        = "donor assigned successfully"
	MessageSuccessGetDonorMatches    = "matching donors retrieved successfully"

	MessageFailedCreateBloodRequest = "failed to create blood request"
	MessageFailedGetBloodRequests   = "failed to retrieve blood requests"
	MessageFailedUpdateRequestState = "failed to update blood request status"
	MessageFailedAssignDonor        = "failed to assign donor"
	MessageFailedGetDonorMatches    = "failed to retrieve matching donors"

	ErrRequestNotFound     = NewError(KindNotFound, "blood request not found")
	ErrDonorNotFound       = NewError(KindNotFound, "donor not found")
	ErrInvalidTransition   = NewError(KindInvalidTransition, "invalid blood request status transition")
	ErrBloodGroupMismatch  = NewError(KindBloodGroupMismatch, "donor blood group does not match request")
	ErrAlreadyFulfilled    = NewError(KindAlreadyFulfilled, "blood request already fulfilled")
	ErrAlreadyCancelled    = NewError(KindAlreadyCancelled, "blood request already cancelled")
	ErrInvalidBloodGroup   = NewError(KindValidation, "invalid blood group")
	ErrInvalidUnits        = NewError(KindValidation, "units must be at least 1")
	ErrInvalidUrgency      = NewError(KindValidation, "urgency must be normal or urgent")
	ErrInvalidRequiredDate = NewError(KindValidation, "required date must be YYYY-MM-DD")
	ErrInvalidStatus       = NewError(KindValidation, "invalid blood request status")
)

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

// BloodGroups lists the canonical groups in display order.
var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

func (g BloodGroup) Valid() bool {
	for _, bg := range BloodGroups {
		if bg == g {
			return true
		}
	}
	return false
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestActive    RequestStatus = "active"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestActive, RequestFulfilled, RequestCancelled:
		return true
	}
	return false
}

func (s RequestStatus) Terminal() bool {
	return s == RequestFulfilled || s == RequestCancelled
}

// OpenStatuses is the default status filter for request listings.
var OpenStatuses = []RequestStatus{RequestPending, RequestActive}

const (
	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"
)

type (
	CreateBloodRequest struct {
		PatientName   string `json:"patient_name" validate:"required"`
		BloodGroup    string `json:"blood_group" validate:"required,blood_group"`
		Units         int    `json:"units" validate:"required,min=1"`
		Hospital      string `json:"hospital"`
		Address       string `json:"address"`
		Division      string `json:"division"`
		District      string `json:"district"`
		Upazila       string `json:"upazila"`
		ContactPerson string `json:"contact_person"`
		ContactNumber string `json:"contact_number" validate:"required"`
		Urgency       string `json:"urgency" validate:"omitempty,oneof=normal urgent"`
		Description   string `json:"description"`
		RequiredDate  string `json:"required_date" validate:"omitempty"`
	}

	UpdateRequestStatus struct {
		Status string `json:"status" validate:"required,oneof=pending active fulfilled cancelled"`
	}

	AssignDonorRequest struct {
		DonorEmail string `json:"donor_email" validate:"required,email"`
	}

	BloodRequestFilter struct {
		Statuses   []RequestStatus
		BloodGroup string
		Division   string
		District   string
		Urgency    string
		Search     string
		Requester  string
		Page       int
		Limit      int
	}

	BloodRequest struct {
		ID             string     `json:"id"`
		PatientName    string     `json:"patient_name"`
		BloodGroup     string     `json:"blood_group"`
		Units          int        `json:"units"`
		Hospital       string     `json:"hospital"`
		Address        string     `json:"address"`
		Division       string     `json:"division"`
		District       string     `json:"district"`
		Upazila        string     `json:"upazila"`
		ContactPerson  string     `json:"contact_person"`
		ContactNumber  string     `json:"contact_number"`
		Urgency        string     `json:"urgency"`
		Description    string     `json:"description,omitempty"`
		RequiredDate   *time.Time `json:"required_date,omitempty"`
		RequesterEmail string     `json:"requester_email"`
		Status         string     `json:"status"`
		FulfilledBy    *string    `json:"fulfilled_by,omitempty"`
		FulfilledAt    *time.Time `json:"fulfilled_at,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
		UpdatedAt      time.Time  `json:"updated_at"`
	}

	Assignment struct {
		RequestID   string    `json:"request_id"`
		DonationID  string    `json:"donation_id"`
		DonorEmail  string    `json:"donor_email"`
		Units       int       `json:"units"`
		FulfilledAt time.Time `json:"fulfilled_at"`
	}
)
