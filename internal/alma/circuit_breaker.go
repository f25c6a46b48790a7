// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/almareport/internal/config"
	"github.com/tomtom215/almareport/internal/logging"
	"github.com/tomtom215/almareport/internal/metrics"
)

const (
	// breakerName prefixes the per-host breaker names in metrics and logs.
	breakerName = "alma-api"

	// maxBreakers bounds the per-host set. Alma has a handful of regional
	// hosts; calls to hosts beyond the bound run without a breaker.
	maxBreakers = 32
)

// breakerSet holds one circuit breaker per upstream host, so failures
// against one region never reject calls to another.
type breakerSet struct {
	cfg config.CircuitBreakerConfig

	mu     sync.Mutex
	byHost map[string]*circuitBreaker
}

func newBreakerSet(cfg config.CircuitBreakerConfig) *breakerSet {
	return &breakerSet{cfg: cfg, byHost: make(map[string]*circuitBreaker)}
}

// forEndpoint returns the breaker for the endpoint's host, creating it on
// first use. It returns nil once maxBreakers hosts are tracked.
func (s *breakerSet) forEndpoint(endpoint string) *circuitBreaker {
	host := endpointHost(endpoint)

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.byHost[host]; ok {
		return b
	}
	if len(s.byHost) >= maxBreakers {
		return nil
	}
	b := newCircuitBreaker(s.cfg, breakerName+":"+host)
	s.byHost[host] = b
	return b
}

// summary returns the worst state across all hosts: open, half-open or closed.
func (s *breakerSet) summary() gobreaker.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	worst := gobreaker.StateClosed
	for _, b := range s.byHost {
		if st := b.State(); stateToFloat(st) > stateToFloat(worst) {
			worst = st
		}
	}
	return worst
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// circuitBreaker fails fast while the Alma API is down. It never retries.
//
// DETERMINISM NOTE: gobreaker uses real time for its interval and open
// timeout. Tests drive it with a short OpenTimeout or assert only on the
// closed and open states.
type circuitBreaker struct {
	cb   *gobreaker.CircuitBreaker[[]byte]
	name string
}

// newCircuitBreaker builds the breaker from config:
//   - MaxRequests 1 in half-open state
//   - Interval resets counts while closed
//   - OpenTimeout before a half-open trial request
//   - Opens when failure ratio >= FailureRatio with at least MinRequests requests
func newCircuitBreaker(cfg config.CircuitBreakerConfig, name string) *circuitBreaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio

			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return !isBreakerFailure(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &circuitBreaker{cb: cb, name: name}
}

// isBreakerFailure reports whether err says something about Alma's health.
// Transport failures and 5xx responses count. 4xx, application errors and
// unknown hosts (a bad region) are the caller's problem and do not.
func isBreakerFailure(err error) bool {
	if err == nil {
		return false
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		return true
	}
	switch fe.Kind {
	case KindTransport:
		var dnsErr *net.DNSError
		return !errors.As(err, &dnsErr) || !dnsErr.IsNotFound
	case KindUpstreamHTTP:
		return fe.Upstream >= http.StatusInternalServerError
	default:
		return false
	}
}

// execute runs fn through the breaker. A rejected call is returned as a
// KindUnavailable FetchError without invoking fn.
func (b *circuitBreaker) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := b.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, newError(KindUnavailable, msgUnavailable, err)
		}

		if isBreakerFailure(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)

	return result, nil
}

// State returns the current breaker state.
func (b *circuitBreaker) State() gobreaker.State {
	return b.cb.State()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
