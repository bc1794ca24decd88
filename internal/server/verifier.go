package server

import (
	"context"

	"github.com/njchilds90/linearcheck"
)

// Verifier is the part of *linearcheck.Verifier the HTTP layer needs.
type Verifier interface {
	VerifyContext(ctx context.Context, variableNames, transformation string) linearcheck.Result
	HandleToolCall(req linearcheck.ToolRequest) linearcheck.ToolResponse
}
