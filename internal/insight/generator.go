// Package insight produces natural-language summaries of report output via
// an external text-generation endpoint. The report package itself never
// performs network I/O; this package is the collaborator that does.
package insight

import "context"

type Request struct {
	Prompt string
	System string
}

type Response struct {
	Text  string
	Model string
}

// Generator is a text-generation backend.
type Generator interface {
	ID() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

const systemPrompt = "You are a financial assistant for an app-based driver. " +
	"Summarize the earnings digest you are given in a few short paragraphs: " +
	"call out the overall profit, the strongest and weakest periods, and one " +
	"practical suggestion. Use the same currency symbol as the digest. " +
	"Do not invent numbers that are not in the digest."
