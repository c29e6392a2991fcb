package observability

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Hooks returns lifecycle hooks that log machine events.
func Hooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHalt: func(e *domain.MachineEvent) {
			logger.Info("machine halted",
				"state", e.State,
				"read", e.Read,
				"steps", e.Steps,
			)
		},
		OnFault: func(e *domain.MachineEvent) {
			logger.Error("machine faulted",
				"state", e.State,
				"read", e.Read,
				"steps", e.Steps,
				"err", e.Err,
			)
		},
	}
}
