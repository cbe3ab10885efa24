package dto

type CreateLeadRequest struct {
	ActivityID string `json:"activity_id" validate:"required,uuid"`
	ChildAge   int    `json:"child_age" validate:"required,min=3,max=18"`
	Message    string `json:"message" validate:"omitempty,max=2000"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,is-lead-status"`
}
