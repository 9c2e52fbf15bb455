package requestdata

import (
	"context"
)

type ctxKey struct{}

var requestDataKey ctxKey

// RequestData carries the verified principal for a single request. The role
// is resolved once by the access guard; an empty role means the user record
// does not exist yet.
type RequestData struct {
	TokenString string
	Subject     string
	Email       string
	Role        string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
