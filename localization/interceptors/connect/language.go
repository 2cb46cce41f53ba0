package connect

import (
	"context"

	"connectrpc.com/connect"

	"github.com/itoolpack/itoolpack/localization"
)

// LanguageInterceptor implements connect.Interceptor, negotiating the
// Accept-Language header of every call into the handler context.
type LanguageInterceptor struct {
	negotiator localization.Negotiator
}

var _ connect.Interceptor = (*LanguageInterceptor)(nil)

func NewLanguageInterceptor(n localization.Negotiator) *LanguageInterceptor {
	return &LanguageInterceptor{negotiator: n}
}

func (l *LanguageInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		lang := l.negotiator.Match(localization.ExtractLanguageFromHTTPHeader(req.Header())...)
		return next(localization.ToContext(ctx, lang), req)
	}
}

// WrapStreamingClient is a pass-through; language negotiation is server side only.
func (l *LanguageInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (l *LanguageInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		lang := l.negotiator.Match(localization.ExtractLanguageFromHTTPHeader(conn.RequestHeader())...)
		return next(localization.ToContext(ctx, lang), conn)
	}
}
