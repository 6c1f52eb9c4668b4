package service

import (
	"escrow-relay/internal/core/domain"
	"escrow-relay/internal/core/ports"
)

type nopMetrics struct{}

func (nopMetrics) ObserveVerification(bool)                                    {}
func (nopMetrics) ObserveClaim(domain.ClaimAction, domain.RelayerMode, string) {}
func (nopMetrics) ObserveStoreRetry(string)                                    {}

func metricsOrNop(m ports.RelayMetrics) ports.RelayMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
