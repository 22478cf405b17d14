// Package logging provides the structured logging surface shared by the
// application, the HTTP server and the calibration runner. Components depend
// on the Logger interface; zerolog is the backend.
package logging
