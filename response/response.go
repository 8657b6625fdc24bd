package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	UID      uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type VoteCountResponse struct {
	ReportID          uint `json:"report_id"`
	Votes             int  `json:"votes"`
	HasVoted          bool `json:"has_voted"`
	CommunityVerified bool `json:"community_verified"`
}

type RoutingResponse struct {
	Department string `json:"department"`
	Assignee   string `json:"assignee"`
	Priority   string `json:"priority"`
}
