package localization

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/itoolpack/itoolpack/telemetry"
)

const (
	instrumentationName = "github.com/itoolpack/itoolpack/localization"

	outcomeHit      = "hit"
	outcomeFallback = "fallback"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
)

//nolint:gochecknoglobals // instruments are created once per process
var (
	storeTracer   = telemetry.NewTracer(instrumentationName)
	lookupCounter = telemetry.DimensionlessMeasure(
		instrumentationName,
		"/lookups",
		"Translation lookups by outcome and served language.",
	)
	outcomeKey  = attribute.Key("outcome")
	languageKey = attribute.Key("language")
)

func recordLookup(outcome, language string) {
	lookupCounter.Add(context.Background(), 1, metric.WithAttributes(
		outcomeKey.String(outcome),
		languageKey.String(language),
	))
}
