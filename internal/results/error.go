package results

// ErrorResult is the JSON body returned by the web API when a request is rejected
type ErrorResult struct {
	Error string `json:"error"`
}
