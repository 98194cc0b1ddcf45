// Package memory configures the Go soft memory limit for containers.
//
// Decoding a source image allocates a full RGBA buffer (a 20MP photo is about
// 80MB), so a burst of concurrent thumbnail requests can push the heap past a
// container limit. GOMAXPROCS follows cgroup CPU limits automatically but
// GOMEMLIMIT does not, so [ConfigureFromEnv] derives it from MEMORY_LIMIT:
//
//	env:
//	- name: MEMORY_LIMIT
//	  valueFrom:
//	    resourceFieldRef:
//	      resource: limits.memory
//	- name: MEMORY_RATIO
//	  value: "0.85"
//
// An explicit GOMEMLIMIT always takes precedence and is only reported.
package memory
