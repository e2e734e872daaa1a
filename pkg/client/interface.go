package client

import "context"

// VisionClient sends one image plus a prompt to a vision model backend and
// returns the raw text answer.
type VisionClient interface {
	// SimpleQuery asks for a free-form answer
	SimpleQuery(ctx context.Context, model, prompt, imgB64 string) (string, error)
	// JSONQuery asks the backend to constrain the answer to a JSON object
	JSONQuery(ctx context.Context, model, prompt, imgB64 string) (string, error)
}
