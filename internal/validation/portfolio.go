package validation

import (
	"strings"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/api/request"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	// Required field
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > maxNameLength {
		errors["name"] = "name must be 100 characters or less"
	}

	// Optional but has constraints
	if req.Description != nil && len(*req.Description) > maxDescriptionLength {
		errors["description"] = "description must be 500 characters or less"
	}

	return result(errors)
}

func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > maxNameLength {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.Description != nil && len(*req.Description) > maxDescriptionLength {
		errors["description"] = "description must be 500 characters or less"
	}

	return result(errors)
}

func ValidateCreateGroup(req request.CreateGroupRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > maxNameLength {
		errors["name"] = "name must be 100 characters or less"
	}

	return result(errors)
}
