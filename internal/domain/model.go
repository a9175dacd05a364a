package domain

// SendRequest carries the external inputs of a send.
type SendRequest struct {
	Endpoint     string
	Priority     uint8
	TTL          uint32
	SharedSecret string
}

// Response is the transport's answer. The core does not interpret it.
type Response struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Body       []byte `json:"-"`
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// SendRecord is one entry of the send history.
type SendRecord struct {
	ID         string `json:"id"`
	Timestamp  string `json:"timestamp"`
	Endpoint   string `json:"endpoint"`
	App        string `json:"app"`
	Title      string `json:"title"`
	SHA256     string `json:"sha256"`
	Priority   uint8  `json:"priority"`
	TTL        uint32 `json:"ttl"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the attempt did not produce a 2xx response.
func (r SendRecord) Failed() bool {
	return r.Error != "" || r.StatusCode < 200 || r.StatusCode >= 300
}
