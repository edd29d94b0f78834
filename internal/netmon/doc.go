// Package netmon watches network reachability for userdesk.
//
// A Monitor probes on a fixed interval (TCP dial to the API host by
// default) and notifies subscribers only when reachability flips. It
// reports connected until the first probe completes.
package netmon
