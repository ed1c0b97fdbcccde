package bloodrequest

import (
	"blood-portal/domain"
	"blood-portal/entities"
	"blood-portal/pkg/notification"
	"fmt"
)

// transitions lists the moves an admin may make with a plain status update.
// Fulfilled is reached only through assignment.
var transitions = map[domain.RequestStatus][]domain.RequestStatus{
	domain.RequestPending: {domain.RequestActive, domain.RequestCancelled},
	domain.RequestActive:  {domain.RequestCancelled},
}

func CanTransition(from, to domain.RequestStatus) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return domain.ErrInvalidTransition
}

type statusMessage struct {
	Type    domain.NotificationType
	Title   string
	Message string
}

var statusMessages = map[domain.RequestStatus]statusMessage{
	domain.RequestActive: {
		Type:    domain.NotificationInfo,
		Title:   "Blood request activated",
		Message: "Your request for %d unit(s) of %s blood for %s is now active and visible to donors.",
	},
	domain.RequestFulfilled: {
		Type:    domain.NotificationSuccess,
		Title:   "Blood request fulfilled",
		Message: "A donor has been assigned to your request for %d unit(s) of %s blood for %s.",
	},
	domain.RequestCancelled: {
		Type:    domain.NotificationError,
		Title:   "Blood request cancelled",
		Message: "Your request for %d unit(s) of %s blood for %s has been cancelled.",
	},
}

// StatusNotification builds the requester notice for a status change. The
// boolean is false when the status has no user-facing message.
func StatusNotification(request *entities.BloodRequest, status domain.RequestStatus) (*entities.Notification, bool, error) {
	msg, ok := statusMessages[status]
	if !ok {
		return nil, false, nil
	}
	n, err := notification.New(
		request.RequesterEmail,
		msg.Type,
		msg.Title,
		fmt.Sprintf(msg.Message, request.Units, request.BloodGroup, request.PatientName),
		"/dashboard/blood-requests/"+request.ID.String(),
	)
	if err != nil {
		return nil, false, err
	}
	return n, true, nil
}

func ToDomain(r *entities.BloodRequest) *domain.BloodRequest {
	return &domain.BloodRequest{
		ID:             r.ID.String(),
		PatientName:    r.PatientName,
		BloodGroup:     r.BloodGroup,
		Units:          r.Units,
		Hospital:       r.Hospital,
		Address:        r.Address,
		Division:       r.Division,
		District:       r.District,
		Upazila:        r.Upazila,
		ContactPerson:  r.ContactPerson,
		ContactNumber:  r.ContactNumber,
		Urgency:        r.Urgency,
		Description:    r.Description,
		RequiredDate:   r.RequiredDate,
		RequesterEmail: r.RequesterEmail,
		Status:         r.Status,
		FulfilledBy:    r.FulfilledBy,
		FulfilledAt:    r.FulfilledAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
