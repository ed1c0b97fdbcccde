package domain

const (
	RoleUser  = "user"
	RoleDonor = "donor"
	RoleAdmin = "admin"

	SystemActor = "system"
)

var (
	MesaageUserNotAllowed     = "user not allowed"
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"
)

// Caller is the identity capability resolved once per request by the auth
// middleware and handed to every gated operation.
type Caller struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

func NewCaller(userID, email, role string) Caller {
	return Caller{
		UserID:  userID,
		Email:   email,
		Role:    role,
		IsAdmin: role == RoleAdmin,
	}
}

func (c Caller) Authenticated() bool {
	return c.Email != ""
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	if limit < 1 {
		limit = 1
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}
