package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/itoolpack/itoolpack/localization"
)

// LanguageUnaryInterceptor negotiates the accept-language metadata against n
// and stores the result in the handler context.
func LanguageUnaryInterceptor(n localization.Negotiator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any,
		_ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		lang := n.Match(localization.ExtractLanguageFromGrpcRequest(ctx)...)
		return handler(localization.ToContext(ctx, lang), req)
	}
}

// LanguageStreamInterceptor is the streaming counterpart of LanguageUnaryInterceptor.
func LanguageStreamInterceptor(n localization.Negotiator) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := ss.Context()
		lang := n.Match(localization.ExtractLanguageFromGrpcRequest(ctx)...)

		// Handlers read the language from the stream context, so the stream is wrapped.
		languageStream := &serverStreamWrapper{localization.ToContext(ctx, lang), ss}

		return handler(srv, languageStream)
	}
}

type serverStreamWrapper struct {
	ctx context.Context
	grpc.ServerStream
}

func (s *serverStreamWrapper) Context() context.Context {
	return s.ctx
}
