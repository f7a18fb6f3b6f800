package model

type TimelineSummary struct {
	Name        string  `json:"name"`
	Revision    string  `json:"revision,omitempty"`
	Title       string  `json:"title,omitempty"`
	NumParts    int     `json:"numParts"`
	NumEvents   int     `json:"numEvents"`
	NumLoops    int     `json:"numLoops"`
	NumEndings  int     `json:"numEndings"`
	Duration    float64 `json:"duration"`
	Diagnostics int     `json:"diagnostics"`
}

type EventResponse struct {
	Event
	Chord string `json:"chord,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
