package dto

// ListParams holds common token-pagination parameters.
type ListParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}
