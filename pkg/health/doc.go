/*
Package health implements the probe strategies used to verify that a
woken node has actually come up.

Three checkers implement the Checker interface:

  - HTTPChecker: request a URL, match the response status code and/or a regex against the body
  - TCPChecker: attempt a TCP connect to ip:port
  - ShellChecker: run a command via "sh -c", match the exit code and/or a regex against stdout

Each Check call is exactly one attempt and never returns an error:
connection refused, DNS failure, spawn failure and friends are all
ordinary unhealthy Results. Retry pacing and the overall timeout budget
live in pkg/engine, not here.
*/
package health
