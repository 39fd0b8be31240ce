package dto

// PageSize is the fixed number of entities returned per list page.
const PageSize = 5

// Payload is a raw JSON object as received from the client, before
// normalization. Keys that were not sent are absent from the map.
type Payload map[string]any

// Has reports whether key was sent, even with a null value.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Envelope wraps every successful response.
type Envelope struct {
	Data    any       `json:"data"`
	Message string    `json:"message"`
	Meta    *PageMeta `json:"meta,omitempty"`
}

func NewEnvelope(data any, message string) Envelope {
	return Envelope{Data: data, Message: message}
}

// PageMeta describes the page carried by a list envelope.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

func NewPageMeta(page, perPage int, total int64) *PageMeta {
	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return &PageMeta{CurrentPage: page, PerPage: perPage, Total: total, LastPage: last}
}
