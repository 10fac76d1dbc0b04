package auth

import "context"

type contextKey string

const operatorContextKey contextKey = "operator"

// OperatorContext identifies the authenticated caller of a request
type OperatorContext struct {
	Subject  string
	Name     string
	AuthType string // "api_key" or "jwt"
}

// WithOperator stores the operator context in the request context
func WithOperator(ctx context.Context, op *OperatorContext) context.Context {
	return context.WithValue(ctx, operatorContextKey, op)
}

// FromContext retrieves the operator context from the request context
func FromContext(ctx context.Context) (*OperatorContext, bool) {
	op, ok := ctx.Value(operatorContextKey).(*OperatorContext)
	return op, ok
}
