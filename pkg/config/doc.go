/*
Package config loads and validates the wakegrid node list.

The input is a YAML sequence of node records:

	- name: "nas"
	  mac: "00:11:22:33:44:55"
	  interface: "eth0"
	  vlan: 100
	  depends:
	    - "switch"
	  check:
	    - type: http
	      url: "http://nas.lan:5000/health"
	      status: 200
	      retry: 5s
	      timeout: 2 minutes

Validation is eager and all-or-nothing: duplicate or missing names, bad
MAC addresses, underspecified health checks, undefined dependencies and
dependency cycles all abort the load with a typed error before anything
is activated. On success the returned node list is already in activation
order.
*/
package config
