package nutrition

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/nutrition")
