package model

const (
	// Rating bounds
	MinRating = 1
	MaxRating = 5

	// Submitter identity bounds
	MinUsernameLength = 2
	MaxUsernameLength = 50

	// Tag extraction
	MaxTags      = 5
	MinTagLength = 4 // tokens shorter than this are never tags
)
