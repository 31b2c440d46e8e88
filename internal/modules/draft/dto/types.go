package dto

import (
	prospectdomain "leadclip/internal/modules/prospect/domain"
)

type ApplyInput struct {
	Field string
	Value string
}

type DraftOutput struct {
	Draft  prospectdomain.Prospect
	Exists bool
}
