package metrics_fx

import (
	"go.uber.org/fx"
	"mothwallet/pkg/metrics"
)

var Module = fx.Provide(metrics.New)
