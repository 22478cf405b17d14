// Package server exposes evaluations over HTTP.
//
// Routes:
//
//	GET /eval?fn=sin&x=1/2&k=32&digits=40   evaluate one function
//	GET /functions                           list registered functions
//	GET /metrics                             Prometheus exposition
//	GET /healthz                             liveness probe
//
// Every route passes through SecurityMiddleware and request metrics.
package server
