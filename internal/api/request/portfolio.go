package request

// CreatePortfolioRequest represents the request body for creating a portfolio
type CreatePortfolioRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdatePortfolioRequest only changes the fields that are present.
type UpdatePortfolioRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateGroupRequest represents the request body for creating a group in a portfolio
type CreateGroupRequest struct {
	Name string `json:"name"`
}
