package rpc

// DecodeRequest asks for the most likely hidden path of an observation
// string.
type DecodeRequest struct {
	Observations string `json:"observations"`
}

// DecodeResponse carries the decoded path.
type DecodeResponse struct {
	Model       string   `json:"model"`
	States      []string `json:"states"`
	Path        string   `json:"path"`
	Probability float64  `json:"probability"`
	// Cached reports whether the result came from the decode cache.
	Cached bool `json:"cached,omitempty"`
}

// LikelihoodRequest asks for the total probability of an observation
// string.
type LikelihoodRequest struct {
	Observations string `json:"observations"`
}

// LikelihoodResponse carries the forward probability.
type LikelihoodResponse struct {
	Model      string  `json:"model"`
	Likelihood float64 `json:"likelihood"`
}
