package dto

import (
	prospectdomain "leadclip/internal/modules/prospect/domain"
)

type SaveInput struct {
	// Stay keeps the saved record loaded as the draft instead of
	// clearing, for repeated quick captures on the same prospect.
	Stay bool
}

type SaveOutput struct {
	Prospect prospectdomain.Prospect
	Created  bool
}

type ListInput struct {
	Statuses []string
	// Refresh pulls from the backend before listing.
	Refresh bool
}

type TeamMemberOutput struct {
	ID    string
	Name  string
	Email string
	Role  string
}
