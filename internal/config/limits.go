package config

const (
	// MaxTitleLength bounds project and presentation titles.
	MaxTitleLength = 255

	// MaxDescriptionLength bounds project descriptions.
	MaxDescriptionLength = 2000

	// MaxSlideContentBytes bounds the raw slide content accepted from a form.
	MaxSlideContentBytes = 1 << 20

	// MinPasswordLength matches the auth backend's minimum.
	MinPasswordLength = 6

	// MediaPageSize is the page size used against the stock media APIs.
	MediaPageSize = 20
)
