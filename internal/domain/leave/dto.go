package leave

// CreateRequestRequest is the transport payload for filing a leave
// request. Dates stay strings; the service parses them strictly.
type CreateRequestRequest struct {
	Type      Type   `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Half      *Half  `json:"half,omitempty"`
	Reason    string `json:"reason"`
}

// RequestFilter narrows request listings. PendingOnly selects rows
// with no action and not expired; Action selects a decided state.
type RequestFilter struct {
	Employee    *string
	Manager     *string
	Action      *Action
	PendingOnly bool
}
