package http

// createReq is the JSON creation body. Media entries here must already carry
// durable URLs; raw uploads go through the multipart form instead.
type createReq struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	UnlockDate  string           `json:"unlock_date"`
	Media       []createMediaReq `json:"media"`
}

type createMediaReq struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type suggestReq struct {
	Title string `json:"title"`
	// Image is an optional base64-encoded photo to ground the suggestion.
	Image string `json:"image"`
}
