package model

type ScoreCreated struct {
	ID string `json:"id"`
}

// CommandRequestBody runs editor commands in order. Duration is used by the
// "set-duration" command and written as "num/den".
type CommandRequestBody struct {
	Commands []string `json:"commands"`
	Duration string   `json:"duration,omitempty"`
}

type Engraving struct {
	ID     string `json:"id"`
	Cursor string `json:"cursor"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	SVG    string `json:"svg"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
